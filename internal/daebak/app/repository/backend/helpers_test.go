package backend

import (
	"bytes"
	"encoding/json"
	"io"

	"github.com/AndreyVLZ/mr-daebak/internal/daebak/app/internal/model/assistant"
)

func assistantRequest() assistant.ChatRequest {
	return assistant.ChatRequest{Message: "hi"}
}

func jsonReader(v any) io.Reader {
	data, _ := json.Marshal(v)
	return bytes.NewReader(data)
}
