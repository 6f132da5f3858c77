// Package delivery defines the contract every transport front end satisfies.
package delivery

import "context"

// Delivery is a running transport (HTTP today) serving the usecases.
type Delivery interface {
	Serve(ctx context.Context) error
}
