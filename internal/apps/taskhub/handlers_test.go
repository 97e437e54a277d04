package taskhub

import (
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func taskErrorStatus(t *testing.T, err error) int {
	t.Helper()

	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		return taskError(c, err, "unexpected")
	})

	resp, reqErr := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, reqErr)
	defer resp.Body.Close()
	return resp.StatusCode
}

func TestTaskError_ValidationSentinelsMapTo400(t *testing.T) {
	for _, err := range []error{
		ErrInvalidDueBucket,
		ErrContentRequired,
		ErrInvalidStatus,
		ErrTitleRequired,
	} {
		assert.Equal(t, fiber.StatusBadRequest, taskErrorStatus(t, err), err.Error())
	}
}

func TestTaskError_OwnershipSentinelsMapTo403(t *testing.T) {
	assert.Equal(t, fiber.StatusForbidden, taskErrorStatus(t, ErrNotVisible))
	assert.Equal(t, fiber.StatusForbidden, taskErrorStatus(t, ErrNotCreator))
}

func TestTaskError_UnknownErrorMapsTo500(t *testing.T) {
	assert.Equal(t, fiber.StatusInternalServerError, taskErrorStatus(t, errors.New("boom")))
}
