// Package console implements the interactive account management session: a
// numbered menu that creates, lists and deletes accounts and their profile
// documents, reading operator answers line by line from an io.Reader.
package console
