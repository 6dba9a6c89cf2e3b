package internal

// Version is the current readword release version
const Version = "0.3.0"
