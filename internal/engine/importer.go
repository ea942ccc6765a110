package engine

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/emersion/go-vcard"
	"github.com/tartampluch/go-age/internal/config"
)

// ErrNoBirthday is returned when no contact in the stream has a full BDAY.
var ErrNoBirthday = errors.New(config.ErrNoBirthday)

// ImportSource points at a vCard document: a local path or an http(s) URL.
type ImportSource struct {
	Location string
	User     string // HTTP Basic Auth Username
	Pass     string // HTTP Basic Auth Password
}

// IsRemote reports whether the location must be downloaded.
func (s ImportSource) IsRemote() bool {
	lower := strings.ToLower(s.Location)
	return strings.HasPrefix(lower, config.SchemeHTTP+"://") ||
		strings.HasPrefix(lower, config.SchemeHTTPS+"://")
}

// ImportedBirthday is the first usable contact found in a vCard stream.
type ImportedBirthday struct {
	Name      string
	BirthDate CalendarDate
}

// Importer reads a birth date out of a vCard document.
type Importer struct {
	Fetcher VCardFetcher
}

// Import opens src and returns its first contact with a complete birth date.
func (im *Importer) Import(ctx context.Context, src ImportSource) (ImportedBirthday, error) {
	reader, err := im.open(ctx, src)
	if err != nil {
		if ctx.Err() != nil {
			return ImportedBirthday{}, ctx.Err()
		}
		return ImportedBirthday{}, fmt.Errorf("%s: %w", config.ErrVCardParse, err)
	}
	defer func() { _ = reader.Close() }()

	return ReadBirthday(ctx, reader)
}

func (im *Importer) open(ctx context.Context, src ImportSource) (io.ReadCloser, error) {
	if src.Location == "" {
		return nil, errors.New(config.ErrLocationEmpty)
	}
	if !src.IsRemote() {
		return os.Open(src.Location)
	}
	if im.Fetcher == nil {
		return nil, errors.New(config.ErrFetcherMissing)
	}
	return im.Fetcher.Fetch(ctx, src)
}

// ReadBirthday decodes cards until one carries a BDAY with a year.
// Malformed cards and year-less dates (--MM-DD) are skipped.
func ReadBirthday(ctx context.Context, r io.Reader) (ImportedBirthday, error) {
	decoder := vcard.NewDecoder(r)

	for {
		if err := ctx.Err(); err != nil {
			return ImportedBirthday{}, err
		}

		card, err := decoder.Decode()
		if errors.Is(err, io.EOF) {
			return ImportedBirthday{}, ErrNoBirthday
		}
		if err != nil {
			slog.Warn(config.MsgSkippedCard,
				config.LogKeyComponent, config.CompEngine,
				config.LogKeyError, err)
			continue
		}

		bday := card.Get(config.VCardBDAY)
		if bday == nil || bday.Value == "" {
			continue
		}

		birth, err := ParseDate(bday.Value)
		if err != nil {
			slog.Debug(config.MsgSkippedDate,
				config.LogKeyComponent, config.CompEngine,
				config.LogKeyValue, bday.Value)
			continue
		}

		// Name Strategy: FN (Formatted) > N (Structured) > Fallback
		name := config.FallbackName
		if fn := card.Get(config.VCardFN); fn != nil && fn.Value != "" {
			name = fn.Value
		} else if n := card.Get(config.VCardN); n != nil && n.Value != "" {
			name = n.Value
		}

		slog.Info(config.MsgImportSuccess,
			config.LogKeyComponent, config.CompEngine,
			config.LogKeyName, name,
			config.LogKeyDOB, birth.String())
		return ImportedBirthday{Name: name, BirthDate: birth}, nil
	}
}
