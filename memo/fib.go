package memo

import (
	"errors"
	"fmt"
	"math/big"
)

// ErrNegative is returned for a negative Fibonacci argument.
var ErrNegative = errors.New("memo: negative argument")

// fibFrame is one pending call of fib(n) = fib(n-1) + fib(n-2).
type fibFrame struct {
	n     int
	stage int      // 0: not started, 1: waiting for fib(n-1), 2: waiting for fib(n-2)
	a     *big.Int // fib(n-1) once stage 2 is reached
}

// Fibonacci returns F(n) (F(0)=0, F(1)=1), memoizing every sub-result in s.
//
// It follows the recursive definition call for call: each sub-call first
// consults s, and on a miss computes its value and stores it before
// returning. Calls live on an explicit stack, so large n cannot overflow
// the goroutine stack. Stored values are shared; callers must not mutate
// the returned *big.Int.
func Fibonacci(n int, s Store[int, *big.Int]) (*big.Int, error) {
	if n < 0 {
		return nil, fmt.Errorf("fibonacci(%d): %w", n, ErrNegative)
	}

	stack := []fibFrame{{n: n}}
	var ret *big.Int // value returned by the most recently finished call
	for len(stack) > 0 {
		top := len(stack) - 1
		f := &stack[top]
		switch f.stage {
		case 0:
			if v, ok := s.Get(f.n); ok {
				ret = v
				stack = stack[:top]
				continue
			}
			if f.n <= 1 {
				ret = big.NewInt(int64(f.n))
				s.Put(f.n, ret)
				stack = stack[:top]
				continue
			}
			f.stage = 1
			stack = append(stack, fibFrame{n: f.n - 1})
		case 1:
			f.a = ret
			f.stage = 2
			stack = append(stack, fibFrame{n: f.n - 2})
		default:
			ret = new(big.Int).Add(f.a, ret)
			s.Put(f.n, ret)
			stack = stack[:top]
		}
	}
	return ret, nil
}
