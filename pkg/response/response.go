package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *ErrorData  `json:"error,omitempty"`
}

type ErrorData struct {
	Code     string   `json:"code"`
	Message  string   `json:"message"`
	Messages []string `json:"messages,omitempty"`
}

func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    data,
	})
}

func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Response{
		Success: true,
		Data:    data,
	})
}

func Error(c *gin.Context, status int, code, message string) {
	c.JSON(status, Response{
		Success: false,
		Error: &ErrorData{
			Code:    code,
			Message: message,
		},
	})
}

// ValidationErrors returns the user-facing messages collected when a form
// submission fails validation. These are shown inline at checkout.
func ValidationErrors(c *gin.Context, messages []string) {
	c.JSON(http.StatusUnprocessableEntity, Response{
		Success: false,
		Error: &ErrorData{
			Code:     "VALIDATION_ERROR",
			Message:  "payment form is invalid",
			Messages: messages,
		},
	})
}

func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, "BAD_REQUEST", message)
}

func NotFound(c *gin.Context, message string) {
	Error(c, http.StatusNotFound, "NOT_FOUND", message)
}

// PaymentRequired reports a declined charge.
func PaymentRequired(c *gin.Context, message string) {
	Error(c, http.StatusPaymentRequired, "CHARGE_DECLINED", message)
}

// NotImplemented reports a deliberately unsupported operation.
func NotImplemented(c *gin.Context, message string) {
	Error(c, http.StatusNotImplemented, "UNSUPPORTED_OPERATION", message)
}

// BadGateway reports a failure answered by the remote gateway.
func BadGateway(c *gin.Context, message string) {
	Error(c, http.StatusBadGateway, "GATEWAY_ERROR", message)
}

func InternalError(c *gin.Context, err error) {
	Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
}
