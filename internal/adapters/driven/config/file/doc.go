// Package file provides the TOML-backed configuration store.
// Settings such as the artifact library directory, chunk size and
// sentence tokenizer language live in ~/.bookdrip/config.toml.
package file
