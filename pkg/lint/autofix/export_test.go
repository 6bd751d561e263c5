package autofix

// Conflicts exposes conflicts to the external test package.
var Conflicts = conflicts
