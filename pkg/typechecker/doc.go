// Package typechecker implements the static semantics of lx programs. It walks
// the AST once, tracking declarations in a block-scoped stack, and stops at the
// first scope, initialization, or operator error. A successful check yields a
// Program annotated with resolved declaration and expression types, which the
// interpreter and the code generator both consume.
package typechecker
