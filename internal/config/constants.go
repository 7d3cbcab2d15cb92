package config

// Base application details
const AppName = "tide-rebase"
const DefaultConfigFileName = "config.toml"

// Version is overridden at build time with -ldflags "-X".
var Version = "0.4.0-dev"

// Editor behavior
const DefaultUndoLimit = 5000
const DefaultMinWidth = 40
const DefaultMinHeight = 6

// Git integration
const CommentCharAuto = "auto"
const DefaultCommentChar = "#"

// Theme selection
const ThemeAuto = "auto"
