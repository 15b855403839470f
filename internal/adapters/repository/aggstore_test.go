package repository_test

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/okian/critiq/internal/adapters/dataset"
	"github.com/okian/critiq/internal/adapters/repository"
	. "github.com/smartystreets/goconvey/convey"
)

func sampleRows() []dataset.Row {
	return []dataset.Row{
		{
			Developer: "Nintendo", Platform: "Nintendo Switch", Genre: "Action", Manufacturer: "Nintendo",
			PlatformGenre:     "Nintendo Switch_Action",
			DeveloperAvgScore: 8.4, PlatformAge: 8,
			PlatformGenreEncoded: 12, GenreEncoded: 3, PlatformEncoded: 7, ManufacturerEncoded: 2,
			Metascore: 95,
		},
		{
			Developer: "Nintendo", Platform: "Wii", Genre: "Action", Manufacturer: "Nintendo",
			PlatformGenre:     "Wii_Action",
			DeveloperAvgScore: 8.0, PlatformAge: 19,
			// Same genre, different encoding: the mean-over-duplicates
			// behavior of the source table must be preserved.
			PlatformGenreEncoded: 9, GenreEncoded: 5, PlatformEncoded: 4, ManufacturerEncoded: 2,
			Metascore: 88,
		},
		{
			Developer: "Sony", Platform: "PlayStation 5", Genre: "Adventure", Manufacturer: "Sony",
			PlatformGenre:     "PlayStation 5_Adventure",
			DeveloperAvgScore: 7.9, PlatformAge: 5,
			PlatformGenreEncoded: 15, GenreEncoded: 4, PlatformEncoded: 9, ManufacturerEncoded: 6,
			Metascore: math.NaN(),
		},
	}
}

func TestNewAggregateStore(t *testing.T) {
	Convey("Given reference rows", t, func() {
		ctx := context.Background()

		Convey("When building a store from rows", func() {
			store, err := repository.NewAggregateStore(ctx, sampleRows())

			So(err, ShouldBeNil)
			So(store, ShouldNotBeNil)
			So(store.Count(ctx), ShouldEqual, 3)
		})

		Convey("When building a store from no rows", func() {
			store, err := repository.NewAggregateStore(ctx, nil)

			So(store, ShouldBeNil)
			So(errors.Is(err, repository.ErrNoRows), ShouldBeTrue)
		})
	})
}

func TestAggregateLookups(t *testing.T) {
	Convey("Given an aggregate store", t, func() {
		ctx := context.Background()
		store, err := repository.NewAggregateStore(ctx, sampleRows())
		So(err, ShouldBeNil)

		Convey("When looking up a known developer", func() {
			score, matched := store.DeveloperAvgScore(ctx, "Nintendo")

			Convey("Then the mean over its rows is returned", func() {
				So(matched, ShouldBeTrue)
				So(score, ShouldAlmostEqual, (8.4+8.0)/2, 1e-9)
			})
		})

		Convey("When looking up an unknown developer", func() {
			score, matched := store.DeveloperAvgScore(ctx, "Valve")

			Convey("Then the dataset-wide mean is returned, not an error", func() {
				So(matched, ShouldBeFalse)
				So(score, ShouldAlmostEqual, (8.4+8.0+7.9)/3, 1e-9)
			})
		})

		Convey("When looking up platform age", func() {
			age, matched := store.PlatformAge(ctx, "Wii")
			So(matched, ShouldBeTrue)
			So(age, ShouldEqual, 19)

			fallback, matched := store.PlatformAge(ctx, "Dreamcast")
			So(matched, ShouldBeFalse)
			So(fallback, ShouldAlmostEqual, (8.0+19+5)/3, 1e-9)
		})

		Convey("When a genre spans rows with different encodings", func() {
			encoded, matched := store.GenreEncoded(ctx, "Action")

			Convey("Then the averaging fallback behavior is preserved", func() {
				So(matched, ShouldBeTrue)
				So(encoded, ShouldAlmostEqual, (3.0+5.0)/2, 1e-9)
			})
		})

		Convey("When looking up the platform+genre composite", func() {
			encoded, matched := store.PlatformGenreEncoded(ctx, "Nintendo Switch", "Action")
			So(matched, ShouldBeTrue)
			So(encoded, ShouldEqual, 12)

			fallback, matched := store.PlatformGenreEncoded(ctx, "Nintendo Switch", "Racing")
			So(matched, ShouldBeFalse)
			So(fallback, ShouldAlmostEqual, (12.0+9+15)/3, 1e-9)
		})

		Convey("When looking up genre popularity", func() {
			popularity, matched := store.GenrePopularity(ctx, "Action")
			So(matched, ShouldBeTrue)
			So(popularity, ShouldEqual, 2)

			// 3 rows over 2 genres.
			fallback, matched := store.GenrePopularity(ctx, "Puzzle")
			So(matched, ShouldBeFalse)
			So(fallback, ShouldAlmostEqual, 1.5, 1e-9)
		})

		Convey("When looking up manufacturer encodings", func() {
			encoded, matched := store.ManufacturerEncoded(ctx, "Sony")
			So(matched, ShouldBeTrue)
			So(encoded, ShouldEqual, 6)

			fallback, matched := store.ManufacturerEncoded(ctx, "Sega")
			So(matched, ShouldBeFalse)
			So(fallback, ShouldAlmostEqual, (2.0+2+6)/3, 1e-9)
		})
	})
}

func TestStoreOptionsAndInsights(t *testing.T) {
	Convey("Given an aggregate store", t, func() {
		ctx := context.Background()
		store, err := repository.NewAggregateStore(ctx, sampleRows())
		So(err, ShouldBeNil)

		Convey("When listing options", func() {
			opts := store.Options(ctx)

			Convey("Then categories are unique and sorted", func() {
				So(opts.Developers, ShouldResemble, []string{"Nintendo", "Sony"})
				So(opts.Platforms, ShouldResemble, []string{"Nintendo Switch", "PlayStation 5", "Wii"})
				So(opts.Genres, ShouldResemble, []string{"Action", "Adventure"})
				So(opts.Manufacturers, ShouldResemble, []string{"Nintendo", "Sony"})
			})
		})

		Convey("When summarizing insights", func() {
			insights := store.Insights(ctx)

			Convey("Then counts and the average score are computed", func() {
				So(insights.TotalGames, ShouldEqual, 3)
				So(insights.UniqueDevelopers, ShouldEqual, 2)
				So(insights.UniquePlatforms, ShouldEqual, 3)
				So(insights.UniqueGenres, ShouldEqual, 2)
				// Mean over rows that carry a metascore.
				So(insights.AverageScore, ShouldAlmostEqual, (95.0+88)/2, 1e-9)
			})
		})
	})
}
