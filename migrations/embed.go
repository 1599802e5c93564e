package migrations

import "embed"

// FS embeds the SQL migrations of every supported database driver.
// Each driver reads its own subdirectory.
//
//go:embed sqlite3/*.sql mysql/*.sql
var FS embed.FS
