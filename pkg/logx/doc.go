// Package logx configures crontab's structured logging.
//
// This repo uses a small wrapper (logx.Logger) on top of zerolog to keep:
//   - Console output readable (short timestamp + short caller) on stderr, so
//     stdout carries only command results
//   - File output JSON-structured
package logx
