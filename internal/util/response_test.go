package util

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestFail_ExtraFields(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	Fail(c, http.StatusConflict, CodeOutOfStock, "库存不足", Response{
		"short":   []string{"eggs"},
		"message": "ignored",
	})

	if w.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409", w.Code)
	}
	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["code"] != float64(CodeOutOfStock) || body["message"] != "库存不足" {
		t.Errorf("body = %v", body)
	}
	if short, _ := body["short"].([]interface{}); len(short) != 1 {
		t.Errorf("short = %v, want one entry", body["short"])
	}
}
