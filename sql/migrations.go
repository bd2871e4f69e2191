package sql

import (
	"bufio"
	"bytes"
	"fmt"
	"io/fs"
	"sort"
	"strconv"
	"strings"
)

type migration struct {
	order   int
	name    string
	content []byte
}

func loadMigrations(fsys fs.FS) ([]migration, error) {
	var migrations []migration
	err := fs.WalkDir(fsys, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("walkdir %s: %w", path, err)
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), ".sql") {
			return nil
		}
		parts := strings.Split(d.Name(), "_")
		order, err := strconv.Atoi(parts[0])
		if err != nil {
			return fmt.Errorf("invalid migration %s: %w", d.Name(), err)
		}
		content, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("readfile %s: %w", path, err)
		}
		migrations = append(migrations, migration{
			order:   order,
			name:    d.Name(),
			content: content,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(migrations, func(i, j int) bool {
		return migrations[i].order < migrations[j].order
	})
	for i := 1; i < len(migrations); i++ {
		if migrations[i].order == migrations[i-1].order {
			return nil, fmt.Errorf("duplicate migration order %d: %s and %s",
				migrations[i].order, migrations[i-1].name, migrations[i].name)
		}
	}
	return migrations, nil
}

// SQLMigrations applies numbered scripts (0001_initial.sql, 0002_...) from fsys
// that are newer than the user_version of the database, and bumps user_version.
func SQLMigrations(fsys fs.FS) (Migrations, error) {
	migrations, err := loadMigrations(fsys)
	if err != nil {
		return nil, err
	}
	return func(db Executor) error {
		current, err := version(db)
		if err != nil {
			return err
		}
		for _, m := range migrations {
			if m.order <= current {
				continue
			}
			scanner := bufio.NewScanner(bytes.NewReader(m.content))
			scanner.Split(func(data []byte, atEOF bool) (advance int, token []byte, err error) {
				if i := bytes.Index(data, []byte(";")); i >= 0 {
					return i + 1, data[0 : i+1], nil
				}
				if atEOF {
					return len(data), nil, nil
				}
				return 0, nil, nil
			})
			for scanner.Scan() {
				if strings.TrimSpace(strings.TrimSuffix(scanner.Text(), ";")) == "" {
					continue
				}
				if _, err := db.Exec(scanner.Text(), nil, nil); err != nil {
					return fmt.Errorf("exec %s: %w", m.name, err)
				}
			}
			if err := scanner.Err(); err != nil {
				return fmt.Errorf("read %s: %w", m.name, err)
			}
			// binding values in pragma statement is not allowed
			if _, err := db.Exec(fmt.Sprintf("PRAGMA user_version = %d;", m.order), nil, nil); err != nil {
				return fmt.Errorf("update user_version to %d: %w", m.order, err)
			}
		}
		return nil
	}, nil
}
