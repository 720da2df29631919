package httperr

import (
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"

	"github.com/cakeshop/cakeshop/internal/logging"
)

func newApp(dev bool, route fiber.Handler) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: Handler(dev, logging.Discard())})
	app.Get("/boom", route)
	return app
}

func doRequest(t *testing.T, app *fiber.App) (int, map[string]any) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/boom", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	var body map[string]any
	if err := json.Unmarshal(raw, &body); err != nil {
		t.Fatalf("decode body %q: %v", raw, err)
	}
	return resp.StatusCode, body
}

func errorField(t *testing.T, body map[string]any) map[string]any {
	t.Helper()
	if success, _ := body["success"].(bool); success {
		t.Fatalf("expected success=false, body %v", body)
	}
	field, ok := body["error"].(map[string]any)
	if !ok {
		t.Fatalf("missing error object in %v", body)
	}
	return field
}

func TestEnvelopeFromTypedError(t *testing.T) {
	app := newApp(false, func(c *fiber.Ctx) error {
		return NotFound("Product not found with id of 42").WithCode("PRODUCT_MISSING")
	})

	status, body := doRequest(t, app)
	if status != 404 {
		t.Fatalf("expected 404, got %d", status)
	}
	e := errorField(t, body)
	if e["message"] != "Product not found with id of 42" {
		t.Fatalf("unexpected message %v", e["message"])
	}
	if e["type"] != TypeNotFound {
		t.Fatalf("unexpected type %v", e["type"])
	}
	if e["statusCode"] != float64(404) {
		t.Fatalf("unexpected statusCode %v", e["statusCode"])
	}
	if e["code"] != "PRODUCT_MISSING" {
		t.Fatalf("unexpected code %v", e["code"])
	}
	if _, ok := e["timestamp"].(string); !ok {
		t.Fatalf("missing timestamp in %v", e)
	}
}

func TestEnvelopeDefaults(t *testing.T) {
	app := newApp(false, func(c *fiber.Ctx) error {
		return &Error{Message: "something broke"}
	})

	status, body := doRequest(t, app)
	if status != 500 {
		t.Fatalf("expected default 500, got %d", status)
	}
	e := errorField(t, body)
	if e["type"] != TypeServer {
		t.Fatalf("expected default type %s, got %v", TypeServer, e["type"])
	}
}

func TestEnvelopeSanitizesDetails(t *testing.T) {
	app := newApp(false, func(c *fiber.Ctx) error {
		return Validation("bad input").WithDetails(map[string]any{
			"password": "hunter2",
			"token":    "abc.def.ghi",
			"field":    "email",
		})
	})

	_, body := doRequest(t, app)
	details, ok := errorField(t, body)["details"].(map[string]any)
	if !ok {
		t.Fatalf("expected details to survive sanitization")
	}
	if _, present := details["password"]; present {
		t.Fatalf("password leaked into details")
	}
	if _, present := details["token"]; present {
		t.Fatalf("token leaked into details")
	}
	if details["field"] != "email" {
		t.Fatalf("benign detail dropped: %v", details)
	}
}

func TestStackOnlyInDevelopment(t *testing.T) {
	boom := func(c *fiber.Ctx) error { return Server("kaboom") }

	_, body := doRequest(t, newApp(false, boom))
	if _, present := errorField(t, body)["stack"]; present {
		t.Fatalf("stack must never appear outside development")
	}

	_, body = doRequest(t, newApp(true, boom))
	if _, present := errorField(t, body)["stack"]; !present {
		t.Fatalf("stack expected in development")
	}
}

func TestFiberErrorsNormalized(t *testing.T) {
	app := newApp(false, func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusBadRequest, "bad payload")
	})

	status, body := doRequest(t, app)
	if status != 400 {
		t.Fatalf("expected 400, got %d", status)
	}
	e := errorField(t, body)
	if e["message"] != "bad payload" {
		t.Fatalf("unexpected message %v", e["message"])
	}
}

func TestUnknownErrorHiddenOutsideDevelopment(t *testing.T) {
	app := newApp(false, func(c *fiber.Ctx) error {
		return errors.New("pgx: connection refused at 10.0.0.5")
	})

	status, body := doRequest(t, app)
	if status != 500 {
		t.Fatalf("expected 500, got %d", status)
	}
	if errorField(t, body)["message"] != "Internal Server Error" {
		t.Fatalf("internal detail leaked: %v", body)
	}
}

type selfRendering struct{}

func (selfRendering) Error() string { return "teapot" }

func (selfRendering) Respond(c *fiber.Ctx) error {
	return c.Status(fiber.StatusTeapot).JSON(fiber.Map{"success": false, "custom": true})
}

func TestResponderDelegation(t *testing.T) {
	app := newApp(false, func(c *fiber.Ctx) error {
		return selfRendering{}
	})

	status, body := doRequest(t, app)
	if status != fiber.StatusTeapot {
		t.Fatalf("expected delegation status, got %d", status)
	}
	if body["custom"] != true {
		t.Fatalf("expected delegated body, got %v", body)
	}
}
