// Package store provides SQLite-backed durable key-value slots.
//
// A slot is addressed by a string key and holds a single opaque value.
// Writes replace the whole value (no patching), which is exactly what the
// todo list needs: the full item sequence is re-serialized on every change.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Enforce referential integrity
//
// Schema changes are tracked with PRAGMA user_version and applied by
// runMigrations on Open.
package store
