package migrations

// Default returns the acs schema history. Append new steps at the end;
// never rename or reorder shipped ones.
func Default() []Migration {
	return []Migration{
		createUsersTable(),
		createUserRolesTable(),
		insertDefaultRoles(),
	}
}

func createUsersTable() Migration {
	return Migration{
		ID:          "001_CreateUsersTable",
		Description: "Create Users table",
		Statements: []string{
			`CREATE TABLE IF NOT EXISTS Users (
				Id INTEGER PRIMARY KEY AUTOINCREMENT,
				UserName TEXT NOT NULL UNIQUE,
				HashPassword TEXT NOT NULL CHECK (HashPassword <> ''),
				IsLogged BOOLEAN NOT NULL DEFAULT 0,
				CreatedAt DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
				UpdatedAt DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
			)`,
			`CREATE INDEX IF NOT EXISTS IX_Users_UserName ON Users (UserName)`,
		},
	}
}

func createUserRolesTable() Migration {
	return Migration{
		ID:          "002_CreateUserRolesTable",
		Description: "Create Roles and UserRoles tables",
		Statements: []string{
			`CREATE TABLE IF NOT EXISTS Roles (
				Id INTEGER PRIMARY KEY AUTOINCREMENT,
				Name TEXT NOT NULL UNIQUE,
				Description TEXT
			)`,
			`CREATE TABLE IF NOT EXISTS UserRoles (
				Id INTEGER PRIMARY KEY AUTOINCREMENT,
				UserId INTEGER NOT NULL,
				RoleId INTEGER NOT NULL,
				AssignedAt DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
				FOREIGN KEY (UserId) REFERENCES Users (Id) ON DELETE CASCADE,
				FOREIGN KEY (RoleId) REFERENCES Roles (Id) ON DELETE CASCADE
			)`,
			`CREATE INDEX IF NOT EXISTS IX_UserRoles_UserId ON UserRoles (UserId)`,
			`CREATE INDEX IF NOT EXISTS IX_UserRoles_RoleId ON UserRoles (RoleId)`,
		},
	}
}

func insertDefaultRoles() Migration {
	return Migration{
		ID:          "003_InsertDefaultRoles",
		Description: "Seed default User and Admin roles",
		Statements: []string{
			`INSERT OR IGNORE INTO Roles (Name, Description) VALUES
				('User', 'Regular system user'),
				('Admin', 'System administrator with full access')`,
		},
	}
}
