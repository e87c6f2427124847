package domain

// Envelope é o formato uniforme de resposta de todos os endpoints.
//
// Invariante: IsSuccess=true sempre leva OfficialEmail e Data; IsSuccess=false
// nunca leva Data. Use Success/Failure para construir.
type Envelope struct {
	IsSuccess     bool   `json:"is_success"`
	OfficialEmail string `json:"official_email,omitempty"`
	Data          any    `json:"data,omitempty"`
	Error         string `json:"error,omitempty"`
}

func Success(identity string, data any) Envelope {
	return Envelope{IsSuccess: true, OfficialEmail: identity, Data: data}
}

// Failure monta uma resposta de falha. msg vazio omite o campo "error".
func Failure(msg string) Envelope {
	return Envelope{IsSuccess: false, Error: msg}
}
