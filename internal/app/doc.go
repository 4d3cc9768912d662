// Package app contains the core application logic of the nodebridge
// inspection tool. It defines the main App struct, its configuration, and
// the load, bridge and encode lifecycle, decoupled from any specific
// entrypoint like a CLI.
package app
