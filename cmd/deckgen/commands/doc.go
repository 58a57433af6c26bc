// Package commands defines the deckgen CLI.
//
// Commands
//
//   - build      Render decks to .pptx (the default command)
//   - validate   Expand decks and check them against the canvas
//   - inspect    Print the slides and text of a .pptx file
//   - template   Print the embedded deck description
//   - history    List recent builds from the ledger
//   - serve      Serve the configured deck over HTTP
//
// # Implementation
//
// The root command loads the layered configuration and initialises
// logging before any subcommand runs. Subcommands build their own
// service so that flags can override configuration per invocation.
package commands
