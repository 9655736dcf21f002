// SPDX-License-Identifier: MIT

package covariance

// panicMethodInvalid is the WithMethod panic message.
const panicMethodInvalid = "covariance: WithMethod: unknown method"

// Option mutates internal options. Constructors panic only on nonsensical
// values (programmer error); runtime input problems come back as errors.
type Option func(*Options)

// Options stores the effective configuration after applying Option setters.
type Options struct {
	method Method // DefaultMethod
}

// DefaultMethod is the estimator used when no WithMethod is given.
const DefaultMethod = MethodSAM

// Method returns the resolved estimator.
func (o Options) Method() Method { return o.method }

// WithMethod selects the estimator. Panics on an undeclared Method value;
// use ParseMethod to validate user input first.
func WithMethod(m Method) Option {
	if !m.valid() {
		panic(panicMethodInvalid)
	}

	return func(o *Options) { o.method = m }
}

// gatherOptions applies setters on top of defaults (last-writer-wins; nil skipped).
func gatherOptions(user ...Option) Options {
	o := Options{method: DefaultMethod}
	for _, set := range user {
		if set != nil {
			set(&o)
		}
	}

	return o
}
