package evaluator

// Result — итог одного вычисления: либо значение, либо классифицированная ошибка.
// Успех бывает только через Success; нулевое значение Result считается
// неклассифицированной ошибкой.
type Result struct {
	value float64
	ok    bool
	err   *Error
}

var errUnset = &Error{Kind: KindUnknown, Message: "результат не вычислен"}

func Success(v float64) Result {
	return Result{value: v, ok: true}
}

// Failure оборачивает ошибку; nil превращается в KindUnknown.
func Failure(err error) Result {
	e := AsError(err)
	if e == nil {
		e = &Error{Kind: KindUnknown, Message: "неизвестная ошибка"}
	}
	return Result{err: e}
}

func (r Result) OK() bool {
	return r.ok
}

func (r Result) failure() *Error {
	if r.ok {
		return nil
	}
	if r.err == nil {
		return errUnset
	}
	return r.err
}

// Value возвращает значение и признак успеха.
// При ошибке значение всегда 0: частичных результатов нет.
func (r Result) Value() (float64, bool) {
	if !r.ok {
		return 0, false
	}
	return r.value, true
}

func (r Result) Kind() Kind {
	if e := r.failure(); e != nil {
		return e.Kind
	}
	return KindUnknown
}

func (r Result) Message() string {
	if e := r.failure(); e != nil {
		return e.Message
	}
	return ""
}

// Err возвращает ошибку в виде error (nil при успехе).
func (r Result) Err() error {
	if e := r.failure(); e != nil {
		return e
	}
	return nil
}

func (r Result) Failure() *Error {
	return r.failure()
}
