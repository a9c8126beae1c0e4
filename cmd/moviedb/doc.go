// Package main hosts the moviedb CLI entrypoint and command graph.
//
// Running moviedb without a subcommand starts the numbered interactive menu.
// Every menu action is also available as a Cobra subcommand so the catalog
// can be scripted. Configuration resolution, store selection, and logger
// setup happen once per invocation in commandContext; commands receive a
// ready catalog.Engine and focus on presentation.
package main
