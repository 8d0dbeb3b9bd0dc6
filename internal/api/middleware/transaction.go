package middleware

import (
	"context"
	"net/http"

	"github.com/rs/xid"
)

const TransactionIDHeader = "X-Transaction-ID"
const transactionIDKey = "transaction_id"

// NoTransaction is returned by TransactionCtx for work that runs outside
// a request, such as startup tasks.
const NoTransaction = "no-transaction"

// TransactionCtx retrieves the transaction ID bound to the context.
func TransactionCtx(ctx context.Context) string {
	id, ok := ctx.Value(transactionIDKey).(string)
	if !ok {
		return NoTransaction
	}
	return id
}

// TransactionIDMiddleware reuses the caller-supplied transaction ID or
// mints a fresh one, binds it to the request context and echoes it back
// in the response header. The ID never lives outside the context, so
// concurrent requests cannot see each other's IDs.
func TransactionIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(TransactionIDHeader)
		if id == "" {
			id = xid.New().String()
		}
		w.Header().Set(TransactionIDHeader, id)

		ctx := context.WithValue(r.Context(), transactionIDKey, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
