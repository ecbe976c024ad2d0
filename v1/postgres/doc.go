// Package postgres provides a small pgx-backed record source.
//
// Records to ingest often live in a relational table. Client.QueryRecords
// runs an arbitrary read query and returns one column-keyed map per row,
// which record.FromRows turns into records:
//
//	pg, err := postgres.NewPostgres(ctx, postgres.Config{DSN: os.Getenv("POSTGRES_DSN")})
//	if err != nil {
//	    return err
//	}
//	defer pg.Close()
//
//	rows, err := pg.QueryRecords(ctx, "SELECT id, name, synopsis, syntax FROM commands")
//	records := record.FromRows(rows)
//
// # Configuration
//
// Either a DSN (POSTGRES_DSN) or the discrete Connection fields. Pool size
// and connection lifetime come from ConnectionDetails; zero values fall back
// to package defaults.
//
// # Errors
//
// Statement errors reported by the server (bad SQL, missing table,
// permissions) wrap ErrQuery. Connection problems are returned as pgx
// reports them.
//
// # Fx
//
//	app := fx.New(
//	    fx.Supply(postgres.Config{DSN: dsn}),
//	    postgres.FXModule,
//	    fx.Invoke(func(c postgres.Client) { ... }),
//	)
package postgres
