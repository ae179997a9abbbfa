package controllers

import (
	"encoding/json"
	"errors"
	"fmt"
	"mime"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"eventregistration/internal/domain"
)

// maxEventForm caps a multipart event form: banner plus text fields.
const maxEventForm = domain.MaxBannerSize + 1<<20

// eventForm is an event create or edit request, decoded from multipart/form-data,
// application/x-www-form-urlencoded or JSON. Nil fields were not supplied.
// Any leftSeats field is ignored.
type eventForm struct {
	Title        *string
	Date         *string
	Time         *string
	Location     *string
	TotalSeats   *int
	Tags         *string
	Description  *string
	Highlights   *string
	Organizer    *string
	RemoveBanner bool
	Banner       *domain.BannerUpload

	file multipart.File
}

// eventJSON is the JSON shape of an event form. totalSeats accepts a number or a numeric string.
type eventJSON struct {
	Title        *string      `json:"title"`
	Date         *string      `json:"date"`
	Time         *string      `json:"time"`
	Location     *string      `json:"location"`
	TotalSeats   *json.Number `json:"totalSeats"`
	Tags         *string      `json:"tags"`
	Description  *string      `json:"description"`
	Highlights   *string      `json:"highlights"`
	Organizer    *string      `json:"organizer"`
	RemoveBanner bool         `json:"removeBanner"`
}

// Close releases the uploaded banner file, if any.
func (f *eventForm) Close() {
	if f.file != nil {
		f.file.Close()
	}
}

func parseEventForm(w http.ResponseWriter, r *http.Request) (*eventForm, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "application/json" {
		return parseEventJSON(w, r)
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxEventForm)
	if mediaType == "multipart/form-data" {
		if err := r.ParseMultipartForm(maxEventForm); err != nil {
			return nil, domain.NewValidationError([]string{"invalid multipart form"})
		}
	} else if err := r.ParseForm(); err != nil {
		return nil, domain.NewValidationError([]string{"invalid form body"})
	}

	f := &eventForm{
		Title:       formValue(r, "title"),
		Date:        formValue(r, "date"),
		Time:        formValue(r, "time"),
		Location:    formValue(r, "location"),
		Tags:        formValue(r, "tags"),
		Description: formValue(r, "description"),
		Highlights:  formValue(r, "highlights"),
		Organizer:   formValue(r, "organizer"),
	}
	if v := formValue(r, "removeBanner"); v != nil {
		f.RemoveBanner, _ = strconv.ParseBool(*v)
	}
	seats, err := parseSeats(formValue(r, "totalSeats"))
	if err != nil {
		return nil, err
	}
	f.TotalSeats = seats

	if r.MultipartForm != nil {
		file, hdr, err := r.FormFile("banner")
		switch {
		case errors.Is(err, http.ErrMissingFile):
		case err != nil:
			return nil, domain.NewValidationError([]string{"invalid banner upload"})
		default:
			f.file = file
			f.Banner = &domain.BannerUpload{
				Filename:    hdr.Filename,
				ContentType: hdr.Header.Get("Content-Type"),
				Size:        hdr.Size,
				Body:        file,
			}
		}
	}
	return f, nil
}

func parseEventJSON(w http.ResponseWriter, r *http.Request) (*eventForm, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxEventForm)
	var body eventJSON
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		return nil, domain.NewValidationError([]string{"invalid JSON body"})
	}
	var raw *string
	if body.TotalSeats != nil {
		s := body.TotalSeats.String()
		raw = &s
	}
	seats, err := parseSeats(raw)
	if err != nil {
		return nil, err
	}
	return &eventForm{
		Title:        body.Title,
		Date:         body.Date,
		Time:         body.Time,
		Location:     body.Location,
		TotalSeats:   seats,
		Tags:         body.Tags,
		Description:  body.Description,
		Highlights:   body.Highlights,
		Organizer:    body.Organizer,
		RemoveBanner: body.RemoveBanner,
	}, nil
}

// formValue returns nil when key was not submitted at all.
func formValue(r *http.Request, key string) *string {
	vs, ok := r.Form[key]
	if !ok || len(vs) == 0 {
		return nil
	}
	v := strings.TrimSpace(vs[0])
	return &v
}

func parseSeats(raw *string) (*int, error) {
	if raw == nil {
		return nil, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(*raw))
	if err != nil {
		return nil, domain.NewValidationError([]string{fmt.Sprintf("totalSeats must be an integer, got %q", *raw)})
	}
	return &n, nil
}

// input converts a create form. totalSeats is required.
func (f *eventForm) input() (*domain.EventInput, error) {
	if f.TotalSeats == nil {
		return nil, domain.NewValidationError([]string{"totalSeats is required"})
	}
	return &domain.EventInput{
		Title:       deref(f.Title),
		Date:        deref(f.Date),
		Time:        deref(f.Time),
		Location:    deref(f.Location),
		TotalSeats:  *f.TotalSeats,
		Tags:        deref(f.Tags),
		Description: deref(f.Description),
		Highlights:  deref(f.Highlights),
		Organizer:   deref(f.Organizer),
		Banner:      f.Banner,
	}, nil
}

func (f *eventForm) edit() *domain.EventEdit {
	return &domain.EventEdit{
		Update: domain.EventUpdate{
			Title:       f.Title,
			Date:        f.Date,
			Time:        f.Time,
			Location:    f.Location,
			TotalSeats:  f.TotalSeats,
			Tags:        f.Tags,
			Description: f.Description,
			Highlights:  f.Highlights,
			Organizer:   f.Organizer,
		},
		Banner:       f.Banner,
		RemoveBanner: f.RemoveBanner,
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
