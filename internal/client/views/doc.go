// Package views holds the page-level controllers of the client: the post
// list with search and pagination, post detail, the post create/edit
// dialog, the login and register forms, and the layout guard.
//
// Controllers own UX state only (loading flags, current page, form
// fields, inline errors). They call the resource clients for data and turn
// failures into toasts or inline messages. None of them render; the CLI
// reads their state and prints it.
package views
