package config_test

import (
	"testing"

	"github.com/okian/critiq/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with default options", t, func() {
		cfg := config.New()

		convey.Convey("Then it should have sensible defaults", func() {
			convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
			convey.So(cfg.LogLevel, convey.ShouldEqual, "info")
			convey.So(cfg.DatasetPath, convey.ShouldEqual, "data/metacritic_features.csv")
			convey.So(cfg.DatasetFormat, convey.ShouldEqual, "auto")
			convey.So(cfg.ModelPath, convey.ShouldEqual, "data/model.json")
			convey.So(cfg.WatchDataset, convey.ShouldBeFalse)
			convey.So(cfg.ManufacturerOverrides, convey.ShouldBeEmpty)
		})
	})
}
