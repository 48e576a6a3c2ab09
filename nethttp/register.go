package nethttp

import "github.com/kbukum/httpfacade"

func init() {
	httpfacade.Register(Name, func(cfg httpfacade.Config) (httpfacade.Backend, error) {
		return New(cfg)
	})
}
