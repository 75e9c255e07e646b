package repository

// Tx is an opaque transaction handle. Repository methods accept it so a use
// case can span several calls in one storage transaction without the port
// leaking a concrete driver type. The concrete type is infra-defined
// (pgx.Tx for Postgres); repositories MUST gracefully accept nil (the
// non-transactional path).
type Tx interface{}

// NoTX is passed when no transaction is in flight.
var NoTX Tx
