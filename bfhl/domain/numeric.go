package domain

import "math/big"

// IsPrime faz divisão por ímpares até √n. Negativos, 0 e 1 não são primos.
func IsPrime(n int64) bool {
	if n < 2 {
		return false
	}
	if n == 2 {
		return true
	}
	if n%2 == 0 {
		return false
	}
	for i := int64(3); i*i <= n; i += 2 {
		if n%i == 0 {
			return false
		}
	}
	return true
}

// GCD usa o algoritmo de Euclides e sempre devolve o valor absoluto.
// GCD(a, 0) == |a|.
func GCD(a, b int64) int64 {
	for b != 0 {
		a, b = b, a%b
	}
	if a < 0 {
		return -a
	}
	return a
}

// LCM devolve 0 se algum operando for 0, senão |a*b| / gcd(a, b).
// Usa big.Int porque a redução de até 1000 valores estoura int64 facilmente.
func LCM(a, b *big.Int) *big.Int {
	if a.Sign() == 0 || b.Sign() == 0 {
		return new(big.Int)
	}
	absA := new(big.Int).Abs(a)
	absB := new(big.Int).Abs(b)
	g := new(big.Int).GCD(nil, nil, absA, absB)
	out := new(big.Int).Mul(absA, absB)
	return out.Quo(out, g)
}

// Fibonacci devolve os n primeiros termos de 0, 1, 1, 2, 3, ...
// Para n <= 0 devolve um slice vazio (não nil), que serializa como [].
func Fibonacci(n int) []*big.Int {
	if n <= 0 {
		return []*big.Int{}
	}
	out := make([]*big.Int, 0, n)
	a, b := big.NewInt(0), big.NewInt(1)
	for i := 0; i < n; i++ {
		out = append(out, new(big.Int).Set(a))
		a.Add(a, b)
		a, b = b, a
	}
	return out
}

// FilterPrimes preserva a ordem de entrada.
func FilterPrimes(values []int64) []int64 {
	out := make([]int64, 0, len(values))
	for _, v := range values {
		if IsPrime(v) {
			out = append(out, v)
		}
	}
	return out
}

// FoldGCD reduz da esquerda para a direita, partindo de |values[0]|.
// Slice vazio devolve 0.
func FoldGCD(values []int64) int64 {
	if len(values) == 0 {
		return 0
	}
	acc := GCD(values[0], 0)
	for _, v := range values[1:] {
		acc = GCD(acc, v)
	}
	return acc
}

// FoldLCM reduz da esquerda para a direita, partindo de |values[0]|.
// Slice vazio devolve 0.
func FoldLCM(values []int64) *big.Int {
	if len(values) == 0 {
		return new(big.Int)
	}
	acc := new(big.Int).Abs(big.NewInt(values[0]))
	for _, v := range values[1:] {
		acc = LCM(acc, big.NewInt(v))
	}
	return acc
}
