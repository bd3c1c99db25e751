// Package interpreter executes checked lx programs by walking the AST. Each
// block runs in its own frame of live storage slots; values and operators come
// from the runtime package so the results match the native code generator.
package interpreter
