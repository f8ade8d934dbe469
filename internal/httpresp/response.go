package httpresp

import "github.com/gin-gonic/gin"

type ListResponse[T any] struct {
	Data    []T    `json:"data"`
	Total   int    `json:"total"`
	Message string `json:"message,omitempty"`
}

func OK(c *gin.Context, data any) {
	c.JSON(200, data)
}

func List[T any](c *gin.Context, data []T) {
	ListWithMessage(c, data, "")
}

func ListWithMessage[T any](c *gin.Context, data []T, message string) {
	if data == nil {
		data = []T{}
	}
	c.JSON(200, ListResponse[T]{
		Data:    data,
		Total:   len(data),
		Message: message,
	})
}
