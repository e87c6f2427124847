// Package infra contém implementações concretas (infraestrutura) para os contratos
// definidos no pacote domain.
//
// Exemplos:
//   - GeminiAnswerer: domain.Answerer usando google.golang.org/genai
//   - MemoryStatsStore / RedisStatsStore: domain.StatsStore em memória ou Redis
//   - ChanPool: semáforo simples para limite de concorrência
package infra
