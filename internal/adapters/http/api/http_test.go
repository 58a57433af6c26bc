package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/okian/deckgen/internal/adapters/http/api"
	"github.com/okian/deckgen/internal/adapters/render/workbook"
	service "github.com/okian/deckgen/internal/app"
	"github.com/okian/deckgen/internal/deckfile"
	"github.com/okian/deckgen/internal/domain/layout"
	. "github.com/smartystreets/goconvey/convey"
)

// mockBuilder expands the embedded deck and returns canned bytes.
type mockBuilder struct {
	err      error
	wbErr    error
	lastDeck string
}

func (m *mockBuilder) Validate(ctx context.Context, req service.Request) (*layout.Plan, error) {
	m.lastDeck = req.Deck
	if m.err != nil {
		return nil, m.err
	}
	d, err := deckfile.Default(ctx)
	if err != nil {
		return nil, err
	}
	return layout.Expand(d)
}

func (m *mockBuilder) Render(ctx context.Context, req service.Request) ([]byte, *layout.Plan, error) {
	p, err := m.Validate(ctx, req)
	if err != nil {
		return nil, nil, err
	}
	return []byte("PK-deck"), p, nil
}

func (m *mockBuilder) Workbook(ctx context.Context, req service.Request) ([]byte, *layout.Plan, error) {
	p, err := m.Validate(ctx, req)
	if err != nil {
		return nil, nil, err
	}
	if m.wbErr != nil {
		return nil, nil, m.wbErr
	}
	return []byte("PK-book"), p, nil
}

func newMux(b api.Builder) *http.ServeMux {
	mux := http.NewServeMux()
	api.NewServer(b, "decks/q4.yaml").Register(context.Background(), mux)
	return mux
}

func get(mux *http.ServeMux, method, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, http.NoBody)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	return w
}

func TestServer_Register(t *testing.T) {
	Convey("Given a server registered on a mux", t, func() {
		Convey("When the mux is nil", func() {
			So(func() { api.NewServer(&mockBuilder{}, "").Register(context.Background(), nil) }, ShouldPanic)
		})

		Convey("When requesting /healthz", func() {
			mux := newMux(&mockBuilder{})
			_ = get(mux, http.MethodGet, "/deck/outline")
			w := get(mux, http.MethodGet, "/healthz")

			Convey("Then the metrics exposition is returned", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(w.Body.String(), ShouldContainSubstring, "deckgen_builder_http_requests_total")
			})
		})
	})
}

func TestDeckHandler_Presentation(t *testing.T) {
	Convey("Given a deck handler", t, func() {
		b := &mockBuilder{}
		mux := newMux(b)

		Convey("When GET /deck.pptx succeeds", func() {
			w := get(mux, http.MethodGet, "/deck.pptx")

			Convey("Then the file is served as an attachment", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(w.Body.String(), ShouldEqual, "PK-deck")
				So(w.Header().Get("Content-Type"), ShouldStartWith, "application/vnd.openxmlformats-officedocument.presentationml")
				So(w.Header().Get("Content-Length"), ShouldEqual, "7")
				So(w.Header().Get("Content-Disposition"), ShouldStartWith, "attachment; filename*=UTF-8''vCubeVLA")
				So(w.Header().Get("Content-Disposition"), ShouldEndWith, ".pptx")
				So(b.lastDeck, ShouldEqual, "decks/q4.yaml")
			})
		})

		Convey("When HEAD /deck.pptx is requested", func() {
			w := get(mux, http.MethodHead, "/deck.pptx")
			So(w.Code, ShouldEqual, http.StatusOK)
			So(w.Body.Len(), ShouldEqual, 0)
		})

		Convey("When the method is POST", func() {
			w := get(mux, http.MethodPost, "/deck.pptx")
			So(w.Code, ShouldEqual, http.StatusMethodNotAllowed)
			So(w.Header().Get("Allow"), ShouldEqual, "GET, HEAD")
		})

		Convey("When the deck is invalid", func() {
			b.err = fmt.Errorf("%w: bad", service.ErrValidate)
			w := get(mux, http.MethodGet, "/deck.pptx")

			var body map[string]string
			So(json.Unmarshal(w.Body.Bytes(), &body), ShouldBeNil)
			So(w.Code, ShouldEqual, http.StatusUnprocessableEntity)
			So(body["code"], ShouldEqual, "invalid_deck")
		})

		Convey("When rendering fails", func() {
			b.err = fmt.Errorf("%w: disk", service.ErrRender)
			w := get(mux, http.MethodGet, "/deck.pptx")
			So(w.Code, ShouldEqual, http.StatusInternalServerError)
		})

		Convey("When the request is cancelled", func() {
			b.err = context.Canceled
			w := get(mux, http.MethodGet, "/deck.pptx")
			So(w.Code, ShouldEqual, http.StatusServiceUnavailable)
		})
	})

	Convey("Given a handler without a builder", t, func() {
		mux := newMux(nil)
		w := get(mux, http.MethodGet, "/deck.pptx")
		So(w.Code, ShouldEqual, http.StatusServiceUnavailable)
	})
}

func TestDeckHandler_Outline(t *testing.T) {
	Convey("Given a deck handler", t, func() {
		mux := newMux(&mockBuilder{})

		Convey("When GET /deck/outline is requested", func() {
			w := get(mux, http.MethodGet, "/deck/outline")
			So(w.Code, ShouldEqual, http.StatusOK)
			So(w.Header().Get("Content-Type"), ShouldEqual, "application/json; charset=utf-8")

			var out api.Outline
			So(json.Unmarshal(w.Body.Bytes(), &out), ShouldBeNil)

			Convey("Then it lists slides, counts and text", func() {
				So(out.Output, ShouldEqual, "vCubeVLA年度总结.pptx")
				So(out.Counts, ShouldResemble, layout.Counts{Slides: 6, Texts: 97, Rects: 19, Charts: 2})
				So(out.Slides, ShouldHaveLength, 6)
				So(out.Slides[0].Name, ShouldEqual, "cover")
				So(out.Slides[1].Texts, ShouldContain, "收入完成率")
			})
		})
	})
}

func TestDeckHandler_Workbook(t *testing.T) {
	Convey("Given a deck handler", t, func() {
		b := &mockBuilder{}
		mux := newMux(b)

		Convey("When GET /deck/data.xlsx succeeds", func() {
			w := get(mux, http.MethodGet, "/deck/data.xlsx")
			So(w.Code, ShouldEqual, http.StatusOK)
			So(w.Body.String(), ShouldEqual, "PK-book")
			So(w.Header().Get("Content-Disposition"), ShouldEndWith, ".data.xlsx")
		})

		Convey("When the deck has no charts", func() {
			b.wbErr = fmt.Errorf("%w: %w", service.ErrWorkbook, workbook.ErrNoCharts)
			w := get(mux, http.MethodGet, "/deck/data.xlsx")
			So(w.Code, ShouldEqual, http.StatusNotFound)
			So(strings.Contains(w.Body.String(), "no_charts"), ShouldBeTrue)
		})

		Convey("When the workbook writer fails", func() {
			b.wbErr = fmt.Errorf("%w: %w", service.ErrWorkbook, errors.New("zip"))
			w := get(mux, http.MethodGet, "/deck/data.xlsx")
			So(w.Code, ShouldEqual, http.StatusInternalServerError)
		})
	})
}
