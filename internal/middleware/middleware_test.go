package middleware

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/encryptcookie"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newErrorApp(flash *Flash) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: NewErrorHandler(flash)})
	app.Use(recover.New())
	app.Use(NewLogger())

	app.Get("/api/boom", func(c *fiber.Ctx) error { panic("boom") })
	app.Get("/api/teapot", func(c *fiber.Ctx) error { return fiber.NewError(fiber.StatusTeapot) })
	app.Get("/", func(c *fiber.Ctx) error { panic("boom") })
	app.Get("/boom", func(c *fiber.Ctx) error { panic("boom") })
	app.Get("/missing", func(c *fiber.Ctx) error { return fiber.ErrNotFound })
	app.Get("/notices", func(c *fiber.Ctx) error { return c.JSON(flash.Pop(c)) })
	return app
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(b)
}

func TestErrorHandlerAPI(t *testing.T) {
	app := newErrorApp(NewFlash(NewSessionStore(nil)))

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/boom", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
	assert.JSONEq(t, `{"error":"Internal server error"}`, readBody(t, resp))

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/api/teapot", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusTeapot, resp.StatusCode)
	assert.JSONEq(t, `{"error":"I'm a teapot"}`, readBody(t, resp))
}

func TestErrorHandlerHTMLRedirectsWithNotice(t *testing.T) {
	app := newErrorApp(NewFlash(NewSessionStore(nil)))

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/boom", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "/", resp.Header.Get(fiber.HeaderLocation))

	req := httptest.NewRequest(http.MethodGet, "/notices", nil)
	for _, c := range resp.Cookies() {
		req.AddCookie(c)
	}
	resp, err = app.Test(req)
	require.NoError(t, err)

	var notices []Notice
	require.NoError(t, json.Unmarshal([]byte(readBody(t, resp)), &notices))
	assert.Equal(t, []Notice{{Category: NoticeError, Message: GenericErrorNotice}}, notices)
}

func TestErrorScopeEncryptsNoticeCookie(t *testing.T) {
	flash := NewFlash(NewSessionStore(nil))
	handler := NewErrorHandler(flash)
	app := fiber.New(fiber.Config{ErrorHandler: handler})
	app.Use(encryptcookie.New(encryptcookie.Config{Key: encryptcookie.GenerateKey()}))
	app.Use(NewErrorScope(handler))
	app.Use(recover.New())
	app.Get("/boom", func(c *fiber.Ctx) error { panic("boom") })
	app.Get("/notices", func(c *fiber.Ctx) error { return c.JSON(flash.Pop(c)) })

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/boom", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusFound, resp.StatusCode)

	req := httptest.NewRequest(http.MethodGet, "/notices", nil)
	for _, c := range resp.Cookies() {
		req.AddCookie(c)
	}
	resp, err = app.Test(req)
	require.NoError(t, err)

	var notices []Notice
	require.NoError(t, json.Unmarshal([]byte(readBody(t, resp)), &notices))
	assert.Equal(t, []Notice{{Category: NoticeError, Message: GenericErrorNotice}}, notices)
}

func TestErrorHandlerPlainStatus(t *testing.T) {
	app := newErrorApp(NewFlash(NewSessionStore(nil)))

	// the form page cannot redirect to itself
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/missing", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Not Found", readBody(t, resp))
}

func TestFlashPopClearsNotices(t *testing.T) {
	flash := NewFlash(NewSessionStore(nil))
	app := fiber.New()
	app.Get("/add", func(c *fiber.Ctx) error {
		if err := flash.Add(c, NoticeWarning, "first"); err != nil {
			return err
		}
		if err := flash.Add(c, NoticeInfo, "second"); err != nil {
			return err
		}
		return c.SendStatus(fiber.StatusNoContent)
	})
	app.Get("/pop", func(c *fiber.Ctx) error { return c.JSON(flash.Pop(c)) })

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/add", nil))
	require.NoError(t, err)
	cookies := resp.Cookies()
	require.NotEmpty(t, cookies)
	assert.Equal(t, "dao_explorer_session", cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)

	pop := func() []Notice {
		req := httptest.NewRequest(http.MethodGet, "/pop", nil)
		for _, c := range cookies {
			req.AddCookie(c)
		}
		resp, err := app.Test(req)
		require.NoError(t, err)
		var notices []Notice
		require.NoError(t, json.Unmarshal([]byte(readBody(t, resp)), &notices))
		return notices
	}

	assert.Equal(t, []Notice{
		{Category: NoticeWarning, Message: "first"},
		{Category: NoticeInfo, Message: "second"},
	}, pop())
	assert.Empty(t, pop())
}

func TestValidatorNotBlank(t *testing.T) {
	type form struct {
		Name string `validate:"required,notblank"`
	}
	v := NewValidator()

	assert.NoError(t, v.Validate(&form{Name: "ens.eth"}))

	for _, name := range []string{"", "  ", "\t\n"} {
		err := v.Validate(&form{Name: name})
		require.Error(t, err, "%q", name)
		assert.Contains(t, FieldErrors(err), "Name")
	}

	assert.Nil(t, FieldErrors(assert.AnError))
}

func TestParseQuery(t *testing.T) {
	type query struct {
		DAO string `query:"dao" validate:"required,notblank"`
	}
	v := NewValidator()
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		var q query
		if err := v.ParseQuery(c, &q); err != nil {
			return c.SendStatus(fiber.StatusBadRequest)
		}
		return c.SendString(q.DAO)
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/?dao=aave.eth", nil))
	require.NoError(t, err)
	assert.Equal(t, "aave.eth", readBody(t, resp))

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/?dao=%20", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
