// Package services groups the clients for the external tools the commands
// shell out to.
//
// Each subpackage wraps one tool behind a small client type built on
// execx.Executor, so command behaviour stays testable with a stub executor:
//   - ffmpeg: transcoding, probing, and concat runs.
//   - xfoil: airfoil polar sweeps over stdin-scripted sessions.
//   - sevenzip: archive creation and extraction.
//   - magicpdf: PDF to markdown conversion.
//   - bbdown: video downloads.
//   - garbro: game archive extraction and image conversion.
//   - gitcli: working tree status queries.
//   - opener: the platform file browser.
//
// Clients accept a binary path at construction, apply an optional timeout
// per invocation, and return wrapped errors naming the tool.
package services
