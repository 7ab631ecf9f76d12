package recordapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// TransportError means the request never produced an HTTP response.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string { return e.Op + ": " + e.Err.Error() }
func (e *TransportError) Unwrap() error { return e.Err }

// StatusError is a non-2xx reply. Message is the provider's message, or the
// title and text of an HTML error page.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("status %d: %s", e.Code, e.Message)
}

// DecodeError is a 2xx reply whose body was not the expected JSON.
type DecodeError struct {
	Err     error
	Snippet string
}

func (e *DecodeError) Error() string {
	return "decode response: " + e.Err.Error() + ": " + e.Snippet
}

func (e *DecodeError) Unwrap() error { return e.Err }

func bodyMessage(body []byte, contentType string) string {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return "empty response"
	}
	var env struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if json.Unmarshal(body, &env) == nil {
		if env.Message != "" {
			return env.Message
		}
		if env.Error != "" {
			return env.Error
		}
	}
	if strings.Contains(strings.ToLower(contentType), "html") || bytes.HasPrefix(body, []byte("<")) {
		if msg := htmlMessage(body); msg != "" {
			return msg
		}
	}
	return truncate(string(body), 200)
}

// htmlMessage reduces a gateway error page to "title: first heading".
func htmlMessage(body []byte) string {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return ""
	}
	title := strings.TrimSpace(doc.Find("title").First().Text())
	var head string
	doc.Find("h1,h2,p").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		head = strings.Join(strings.Fields(s.Text()), " ")
		return head == ""
	})
	switch {
	case title != "" && head != "" && head != title:
		return truncate(title+": "+head, 200)
	case title != "":
		return truncate(title, 200)
	}
	return truncate(head, 200)
}

func truncate(s string, n int) string {
	s = strings.TrimSpace(s)
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
