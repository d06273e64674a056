package utils

import (
	"encoding/json"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

// BindStrictJSON decodes the request body into obj, rejecting unknown fields,
// then runs the usual binding validators. Gin's own ShouldBindJSON silently
// drops unknown fields, which lets clients smuggle junk past the DTO layer.
func BindStrictJSON(c *gin.Context, obj interface{}) error {
	dec := json.NewDecoder(c.Request.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(obj); err != nil {
		return err
	}
	return binding.Validator.ValidateStruct(obj)
}
