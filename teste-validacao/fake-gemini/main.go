// Servidor fake do endpoint generateContent do Gemini, para validar o bfhl
// manualmente sem credencial real:
//
//	go run ./teste-validacao/fake-gemini &
//	GEMINI_API_KEY=x GEMINI_BASE_URL=http://localhost:8089 OFFICIAL_EMAIL=a@b.c go run ./cmd/bfhl
//	curl -s localhost:3000/bfhl -d '{"AI":"capital of France?"}'
//
// FAKE_GEMINI_MODE: "ok" (padrão), "empty" (sem candidates), "error" (500), "slow" (dorme 15s).
package main

import (
	"encoding/json"
	"net/http"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"
)

type part struct {
	Text string `json:"text"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type candidate struct {
	Content content `json:"content"`
}

type generateResponse struct {
	Candidates []candidate `json:"candidates"`
}

func main() {
	logger, _ := zap.NewDevelopment()
	defer func() { _ = logger.Sync() }()
	log := logger.Sugar().With("module", "fake-gemini")

	mode := os.Getenv("FAKE_GEMINI_MODE")
	addr := ":8089"
	if v := os.Getenv("LISTEN_ADDR"); v != "" {
		addr = v
	}

	http.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || !strings.HasSuffix(r.URL.Path, ":generateContent") {
			http.NotFound(w, r)
			return
		}

		var req generateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		prompt := ""
		if len(req.Contents) > 0 && len(req.Contents[0].Parts) > 0 {
			prompt = req.Contents[0].Parts[0].Text
		}
		log.Infow("generateContent", "path", r.URL.Path, "mode", mode, "prompt", prompt)

		resp := generateResponse{}
		switch mode {
		case "error":
			http.Error(w, `{"error":{"code":500,"message":"fake failure","status":"INTERNAL"}}`, http.StatusInternalServerError)
			return
		case "slow":
			time.Sleep(15 * time.Second)
		case "empty":
			// sem candidates: o bfhl deve responder "Unknown"
		}
		if mode != "empty" {
			resp.Candidates = []candidate{{Content: content{Role: "model", Parts: []part{{Text: answerFor(prompt)}}}}}
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	})

	log.Infof("fake gemini listening on %s", addr)
	if err := http.ListenAndServe(addr, nil); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

// answerFor devolve uma frase com pontuação, para exercitar a extração da primeira palavra.
func answerFor(prompt string) string {
	p := strings.ToLower(prompt)
	switch {
	case strings.Contains(p, "france"):
		return "Paris.\nIt is the capital."
	case strings.Contains(p, "maharashtra"):
		return "Mumbai!"
	default:
		return "Forty-two"
	}
}
