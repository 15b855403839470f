package game_test

import (
	"errors"
	"testing"

	"github.com/okian/critiq/internal/domain/game"
	. "github.com/smartystreets/goconvey/convey"
)

func validInput() game.Input {
	return game.Input{
		Metascore: 75,
		Month:     6,
		Developer: "Nintendo",
		Platform:  "Nintendo Switch",
		Genre:     "Action",
	}
}

func TestInputValidate(t *testing.T) {
	Convey("Given a prediction input", t, func() {
		Convey("When all fields are valid", func() {
			So(validInput().Validate(), ShouldBeNil)
		})

		Convey("When metascore sits on the boundaries", func() {
			low := validInput()
			low.Metascore = 0
			high := validInput()
			high.Metascore = 100

			Convey("Then 0 and 100 both validate", func() {
				So(low.Validate(), ShouldBeNil)
				So(high.Validate(), ShouldBeNil)
			})
		})

		Convey("When metascore is out of range", func() {
			under := validInput()
			under.Metascore = -1
			over := validInput()
			over.Metascore = 101

			Convey("Then -1 and 101 both fail", func() {
				So(under.Validate(), ShouldNotBeNil)
				So(over.Validate(), ShouldNotBeNil)
			})
		})

		Convey("When month sits on the boundaries", func() {
			jan := validInput()
			jan.Month = 1
			dec := validInput()
			dec.Month = 12

			Convey("Then 1 and 12 both validate", func() {
				So(jan.Validate(), ShouldBeNil)
				So(dec.Validate(), ShouldBeNil)
			})
		})

		Convey("When month is out of range", func() {
			zero := validInput()
			zero.Month = 0
			thirteen := validInput()
			thirteen.Month = 13

			Convey("Then 0 and 13 both fail", func() {
				So(zero.Validate(), ShouldNotBeNil)
				So(thirteen.Validate(), ShouldNotBeNil)
			})
		})

		Convey("When categorical fields are blank or whitespace", func() {
			in := validInput()
			in.Developer = "   "
			in.Genre = ""

			err := in.Validate()

			Convey("Then a validation error reports one message per violation", func() {
				So(err, ShouldNotBeNil)
				So(errors.Is(err, game.ErrValidation), ShouldBeTrue)

				var verr *game.ValidationError
				So(errors.As(err, &verr), ShouldBeTrue)
				So(verr.Messages, ShouldHaveLength, 2)
				So(verr.Messages, ShouldContain, "Developer name cannot be empty")
				So(verr.Messages, ShouldContain, "Genre cannot be empty")
			})
		})

		Convey("When everything is wrong at once", func() {
			in := game.Input{Metascore: -5, Month: 42}
			err := in.Validate()

			var verr *game.ValidationError
			So(errors.As(err, &verr), ShouldBeTrue)
			So(verr.Messages, ShouldHaveLength, 5)
		})
	})
}

func TestIsHolidayRelease(t *testing.T) {
	Convey("Given release months", t, func() {
		Convey("Then only November and December count as holiday releases", func() {
			for month := 1; month <= 12; month++ {
				in := validInput()
				in.Month = month
				So(in.IsHolidayRelease(), ShouldEqual, month == 11 || month == 12)
			}
		})
	})
}

func TestManufacturerFor(t *testing.T) {
	Convey("Given the platform to manufacturer table", t, func() {
		Convey("Then known platforms resolve to their vendor", func() {
			So(game.ManufacturerFor("Nintendo Switch", nil), ShouldEqual, "Nintendo")
			So(game.ManufacturerFor("PlayStation 5", nil), ShouldEqual, "Sony")
			So(game.ManufacturerFor("Xbox Series X", nil), ShouldEqual, "Microsoft")
			So(game.ManufacturerFor("Dreamcast", nil), ShouldEqual, "Sega")
			So(game.ManufacturerFor("iOS (iPhone/iPad)", nil), ShouldEqual, "Apple")
			So(game.ManufacturerFor("Meta Quest", nil), ShouldEqual, "VR")
			So(game.ManufacturerFor("PC", nil), ShouldEqual, "PC")
		})

		Convey("Then unmapped platforms fall back to Other", func() {
			So(game.ManufacturerFor("Atari 2600", nil), ShouldEqual, game.OtherManufacturer)
		})

		Convey("Then overrides win over the built-in table", func() {
			overrides := map[string]string{"Steam Deck": "Valve", "PC": "Valve"}
			So(game.ManufacturerFor("Steam Deck", overrides), ShouldEqual, "Valve")
			So(game.ManufacturerFor("PC", overrides), ShouldEqual, "Valve")
		})
	})
}

func TestNormalized(t *testing.T) {
	Convey("Given an input with untrimmed fields and no manufacturer", t, func() {
		in := game.Input{
			Metascore: 90,
			Month:     11,
			Developer: "  Nintendo  ",
			Platform:  " Nintendo Switch ",
			Genre:     " Action ",
		}

		out := in.Normalized(nil)

		Convey("Then fields are trimmed and the manufacturer derived", func() {
			So(out.Developer, ShouldEqual, "Nintendo")
			So(out.Platform, ShouldEqual, "Nintendo Switch")
			So(out.Genre, ShouldEqual, "Action")
			So(out.Manufacturer, ShouldEqual, "Nintendo")
		})
	})

	Convey("Given an input with an explicit manufacturer", t, func() {
		in := validInput()
		in.Manufacturer = "Sony"

		Convey("Then the supplied value wins over derivation", func() {
			So(in.Normalized(nil).Manufacturer, ShouldEqual, "Sony")
		})
	})
}
