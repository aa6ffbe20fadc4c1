package ingest

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/emersion/go-imap/v2"
	"github.com/emersion/go-imap/v2/imapclient"
	"github.com/emersion/go-message"
	"github.com/emersion/go-message/mail"
	"github.com/rs/zerolog"

	"passionmatch-engine/internal/config"
)

// EmailFetcher reads hotel newsletters from an IMAP mailbox. Messages are
// marked \Seen in Finalize, after their hotels were stored.
type EmailFetcher struct {
	cfg      config.Email
	password func() (string, error)
	log      zerolog.Logger
	now      func() time.Time
}

func NewEmailFetcher(cfg config.Email, password func() (string, error), log zerolog.Logger) *EmailFetcher {
	return &EmailFetcher{
		cfg:      cfg,
		password: password,
		log:      log.With().Str("fetcher", "email").Logger(),
		now:      time.Now,
	}
}

func (f *EmailFetcher) Name() string { return "email" }

func (f *EmailFetcher) connect(ctx context.Context) (*imapclient.Client, error) {
	pw, err := f.password()
	if err != nil {
		return nil, err
	}
	addr := net.JoinHostPort(f.cfg.IMAPHost, strconv.Itoa(f.cfg.IMAPPort))
	c, err := dialAndLogin(ctx, addr, f.cfg.IMAPHost, f.cfg.Username, pw)
	if err != nil {
		return nil, err
	}
	if err := selectMailbox(c, f.cfg.Mailbox); err != nil {
		logoutAndClose(c)
		return nil, err
	}
	return c, nil
}

func (f *EmailFetcher) Fetch(ctx context.Context) (Result, error) {
	res := Result{Source: f.Name()}

	c, err := f.connect(ctx)
	if err != nil {
		return res, err
	}
	defer logoutAndClose(c)

	sinceDays := f.cfg.SinceDays
	if sinceDays <= 0 {
		sinceDays = 7
	}
	msgs, err := fetchUnseen(ctx, c, f.now().AddDate(0, 0, -sinceDays), f.cfg.MaxMessages)
	if err != nil {
		return res, err
	}

	var processed []imap.UID
	for _, m := range msgs {
		body, err := extractHTML(m.Raw)
		if err != nil {
			f.log.Warn().Err(err).Uint32("uid", uint32(m.UID)).Msg("unreadable message; leaving unseen")
			continue
		}
		processed = append(processed, m.UID)
		if body == "" {
			continue
		}

		hotels, err := ParseHotelsHTML(strings.NewReader(body), "", f.Name())
		if err != nil {
			f.log.Warn().Err(err).Str("subject", m.Subject).Msg("newsletter parse failed")
			continue
		}
		f.log.Debug().Str("subject", m.Subject).Str("from", m.From).Int("hotels", len(hotels)).Msg("newsletter parsed")
		res.Hotels = append(res.Hotels, hotels...)
	}

	if len(processed) > 0 {
		res.Finalize = func(ctx context.Context) error {
			c, err := f.connect(ctx)
			if err != nil {
				return fmt.Errorf("mark newsletters seen: %w", err)
			}
			defer logoutAndClose(c)
			return markSeen(c, processed)
		}
	}
	return res, nil
}

// extractHTML returns the largest text/html part of an RFC822 message, with
// transfer encodings undone. A message without HTML yields "".
func extractHTML(raw []byte) (string, error) {
	if len(raw) == 0 {
		return "", errors.New("empty message")
	}
	mr, err := mail.CreateReader(bytes.NewReader(raw))
	if err != nil {
		return "", fmt.Errorf("read message: %w", err)
	}

	var best string
	for {
		p, err := mr.NextPart()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil && !message.IsUnknownCharset(err) && !message.IsUnknownEncoding(err) {
			return best, fmt.Errorf("read message part: %w", err)
		}
		if p == nil {
			continue
		}
		h, ok := p.Header.(*mail.InlineHeader)
		if !ok {
			continue
		}
		ct, _, _ := h.ContentType()
		if !strings.EqualFold(ct, "text/html") {
			continue
		}
		b, err := io.ReadAll(io.LimitReader(p.Body, 6<<20))
		if err != nil {
			continue
		}
		if len(b) > len(best) {
			best = string(b)
		}
	}
	return best, nil
}
