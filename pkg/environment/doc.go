// Package environment propagates the application environment (development,
// staging, production) through context.Context, HTTP requests and logs.
//
//	env := environment.Parse(cfg.Env)
//	r.Use(environment.Middleware(env))
//	if environment.IsDevelopment(ctx) { /* verbose error pages */ }
package environment
