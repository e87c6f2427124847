// Package bfhl fornece o adapter HTTP (net/http + chi) do serviço.
//
// Visão geral (camadas):
//
//   - domain: contratos e tipos do domínio (sem dependência de net/http)
//   - application: validação e despacho das operações, sem net/http
//   - infra: implementações concretas (Gemini, stats em memória/Redis, semáforo)
//   - bfhl (este pacote): rotas, middlewares e tradução de erros para status/envelope
//
// Fluxo do POST /bfhl:
//
//  1. Middlewares: recover, request id, access log, CORS, limite de corpo (10KB),
//     limite de concorrência opcional
//  2. Decodifica o corpo como objeto JSON
//  3. Chama application.Service.Dispatch
//  4. Responde {is_success, official_email, data} ou {is_success:false}
//
// As variáveis de ambiente do binário (cmd/bfhl) controlam identidade, credencial
// do Gemini, porta, métricas e estatísticas.
package bfhl
