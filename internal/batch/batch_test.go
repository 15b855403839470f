package batch

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/critiq/pkg/logger"
)

func TestMain(m *testing.M) {
	if err := logger.Init(); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

func sampleOptions() Options {
	return Options{
		Developers:    []string{"Nintendo", "Sony"},
		Platforms:     []string{"Nintendo Switch", "PlayStation 5"},
		Genres:        []string{"Action", "Adventure"},
		Manufacturers: []string{"Nintendo", "Sony"},
	}
}

func TestGenerateRequests(t *testing.T) {
	Convey("Given service category options", t, func() {
		config := &Config{NumRequests: 100}
		stats := &Stats{}

		Convey("When generating requests", func() {
			requests, err := generateRequests(context.Background(), config, sampleOptions(), stats)
			So(err, ShouldBeNil)
			So(len(requests), ShouldEqual, 100)
			So(stats.RequestsGenerated, ShouldEqual, 100)

			Convey("Then every request stays within the valid ranges", func() {
				for _, req := range requests {
					So(req.Metascore, ShouldBeBetweenOrEqual, 0, 100)
					So(req.Month, ShouldBeBetweenOrEqual, 1, 12)
					So(req.Platform, ShouldBeIn, sampleOptions().Platforms)
					So(req.Genre, ShouldBeIn, sampleOptions().Genres)
				}
			})

			Convey("Then some requests exercise the unknown developer path", func() {
				unknown := 0
				for _, req := range requests {
					if req.Developer == unknownDeveloper {
						unknown++
					}
				}
				So(unknown, ShouldEqual, 10)
			})
		})
	})
}

func TestSubmitPredictions(t *testing.T) {
	Convey("Given a stub prediction service", t, func() {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var req Request
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				w.WriteHeader(http.StatusBadRequest)
				return
			}
			if req.Developer == unknownDeveloper {
				w.WriteHeader(http.StatusBadRequest)
				_ = json.NewEncoder(w).Encode(map[string]string{"code": "validation_error"})
				return
			}
			_ = json.NewEncoder(w).Encode(Prediction{Score: 8.5, Model: "test"})
		}))
		defer srv.Close()

		config := &Config{
			BaseURL: srv.URL,
			Workers: 4,
			Timeout: 5 * time.Second,
		}
		stats := &Stats{}
		requests := []Request{
			{Metascore: 90, Month: 11, Developer: "Nintendo", Platform: "Nintendo Switch", Genre: "Action"},
			{Metascore: 70, Month: 3, Developer: unknownDeveloper, Platform: "PC", Genre: "Indie"},
			{Metascore: 80, Month: 6, Developer: "Sony", Platform: "PlayStation 5", Genre: "Adventure"},
		}

		Convey("When submitting the requests", func() {
			results, err := submitPredictions(context.Background(), config, requests, stats)
			So(err, ShouldBeNil)
			So(len(results), ShouldEqual, 3)

			Convey("Then statistics separate successes from rejections", func() {
				So(stats.RequestsSubmitted, ShouldEqual, 3)
				So(stats.RequestsSuccessful, ShouldEqual, 2)
				So(stats.RequestsRejected, ShouldEqual, 1)
				So(stats.RequestsFailed, ShouldEqual, 0)
			})

			Convey("Then results line up with their requests", func() {
				So(results[0].Prediction, ShouldNotBeNil)
				So(results[0].Prediction.Score, ShouldAlmostEqual, 8.5, 1e-9)
				So(results[1].Prediction, ShouldBeNil)
				So(results[1].Error, ShouldEqual, "rejected")
			})
		})
	})
}
