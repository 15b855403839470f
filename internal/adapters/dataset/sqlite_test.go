package dataset_test

import (
	"context"
	"database/sql"
	"errors"
	"math"
	"path/filepath"
	"testing"

	"github.com/okian/critiq/internal/adapters/dataset"
	. "github.com/smartystreets/goconvey/convey"
	_ "modernc.org/sqlite"
)

const gamesDDL = `CREATE TABLE games (
	developer TEXT,
	platform TEXT,
	genre TEXT,
	manufacturer TEXT,
	developer_avg_score REAL,
	platform_age REAL,
	platform_genre TEXT,
	platform_genre_encoded REAL,
	genre_encoded REAL,
	platform_encoded REAL,
	manufacturer_encoded REAL`

func createGamesDB(t *testing.T, withMetascore bool) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "games.db")

	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	ddl := gamesDDL
	insert := `INSERT INTO games VALUES
		('Nintendo', 'Nintendo Switch', 'Action', 'Nintendo', 8.4, 8, 'Nintendo Switch_Action', 12, 3, 7, 2`
	if withMetascore {
		ddl += ",\n\tmetascore REAL"
		insert += ", 95"
	}
	ddl += "\n)"
	insert += ")"

	if _, err := db.Exec(ddl); err != nil {
		t.Fatalf("create table: %v", err)
	}
	if _, err := db.Exec(insert); err != nil {
		t.Fatalf("insert row: %v", err)
	}
	return path
}

func TestLoadSQLite(t *testing.T) {
	Convey("Given SQLite reference datasets", t, func() {
		ctx := context.Background()

		Convey("When loading a database with a metascore column", func() {
			path := createGamesDB(t, true)
			rows, err := dataset.LoadSQLite(ctx, path)

			Convey("Then rows are scanned with all aggregates", func() {
				So(err, ShouldBeNil)
				So(rows, ShouldHaveLength, 1)
				So(rows[0].Developer, ShouldEqual, "Nintendo")
				So(rows[0].PlatformGenre, ShouldEqual, "Nintendo Switch_Action")
				So(rows[0].PlatformGenreEncoded, ShouldEqual, 12)
				So(rows[0].Metascore, ShouldEqual, 95)
			})
		})

		Convey("When the database lacks the optional metascore column", func() {
			path := createGamesDB(t, false)
			rows, err := dataset.LoadSQLite(ctx, path)

			Convey("Then rows load with NaN metascores", func() {
				So(err, ShouldBeNil)
				So(rows, ShouldHaveLength, 1)
				So(math.IsNaN(rows[0].Metascore), ShouldBeTrue)
			})
		})

		Convey("When the games table is empty", func() {
			path := filepath.Join(t.TempDir(), "empty.db")
			db, err := sql.Open("sqlite", path)
			So(err, ShouldBeNil)
			_, err = db.Exec(gamesDDL + "\n)")
			So(err, ShouldBeNil)
			So(db.Close(), ShouldBeNil)

			rows, err := dataset.LoadSQLite(ctx, path)

			So(rows, ShouldBeNil)
			So(errors.Is(err, dataset.ErrEmptyDataset), ShouldBeTrue)
		})

		Convey("When the games table is missing entirely", func() {
			path := filepath.Join(t.TempDir(), "bare.db")
			db, err := sql.Open("sqlite", path)
			So(err, ShouldBeNil)
			_, err = db.Exec("CREATE TABLE other (id INTEGER)")
			So(err, ShouldBeNil)
			So(db.Close(), ShouldBeNil)

			rows, err := dataset.LoadSQLite(ctx, path)

			So(rows, ShouldBeNil)
			So(err, ShouldNotBeNil)
		})

		Convey("When loading with auto format and a .db extension", func() {
			path := createGamesDB(t, true)
			rows, err := dataset.Load(ctx, path, dataset.FormatAuto)

			So(err, ShouldBeNil)
			So(rows, ShouldHaveLength, 1)
		})
	})
}
