package gen

// Version of the tool.
const Version = "v0.3.0"
