package middleware

import (
	"encoding/json"
	"time"

	"github.com/bilgisen/daoexplorer/internal/logger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/google/uuid"
)

// Notice categories
const (
	NoticeError   = "error"
	NoticeWarning = "warning"
	NoticeInfo    = "info"
)

const flashKey = "_flashes"

// Notice is a one-shot message shown on the next rendered page
type Notice struct {
	Category string `json:"category"`
	Message  string `json:"message"`
}

// NewSessionStore creates the session store used for flash notices.
// A nil storage keeps sessions in memory.
func NewSessionStore(storage fiber.Storage) *session.Store {
	return session.New(session.Config{
		Expiration:     time.Hour,
		Storage:        storage,
		KeyLookup:      "cookie:dao_explorer_session",
		CookieHTTPOnly: true,
		CookieSameSite: "Lax",
		KeyGenerator:   uuid.NewString,
	})
}

// Flash stores notices in the session until they are popped
type Flash struct {
	store *session.Store
}

func NewFlash(store *session.Store) *Flash {
	return &Flash{store: store}
}

// Add queues a notice for the next page render
func (f *Flash) Add(c *fiber.Ctx, category, message string) error {
	sess, err := f.store.Get(c)
	if err != nil {
		return err
	}

	notices := decodeNotices(sess.Get(flashKey))
	notices = append(notices, Notice{Category: category, Message: message})

	data, err := json.Marshal(notices)
	if err != nil {
		return err
	}
	sess.Set(flashKey, string(data))
	return sess.Save()
}

// Pop returns and clears pending notices. Session errors are logged and
// yield no notices.
func (f *Flash) Pop(c *fiber.Ctx) []Notice {
	sess, err := f.store.Get(c)
	if err != nil {
		logger.Get().Warn().Err(err).Msg("Failed to load session")
		return nil
	}

	notices := decodeNotices(sess.Get(flashKey))
	if len(notices) == 0 {
		return nil
	}

	sess.Delete(flashKey)
	if err := sess.Save(); err != nil {
		logger.Get().Warn().Err(err).Msg("Failed to save session")
	}
	return notices
}

func decodeNotices(raw interface{}) []Notice {
	s, ok := raw.(string)
	if !ok || s == "" {
		return nil
	}
	var notices []Notice
	if err := json.Unmarshal([]byte(s), &notices); err != nil {
		return nil
	}
	return notices
}
