// package repositories implements the local SQLite track cache written
// during backups.
package repositories
