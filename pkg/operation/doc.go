/*
Package operation rewrites documentation files in place from a job table.

	+-------------+
	|  Rewriter   |
	| (job loop)  |
	+------+------+
	       |
	+------+------+
	| RuleReplacer|
	|  (pkg/text) |
	+-------------+

🔄 Flow, per job and strictly in table order:
1. Resolve root/path and announce it ("Translating <path>...")
2. Read the whole file and decode it with the configured charset
3. Apply the job's rules, each one to the previous rule's output
4. Encode and overwrite the same file

⚡ Failure model:
The first read or write error stops the run. Files already written keep
their new content, and later jobs never start. A rule that matches nothing
is not an error.

🔍 Example:

	cfg, _ := config.Default(ctx)
	rw, err := operation.New(operation.Options{
		Config: cfg,
		Logger: log.NewWithLogger(os.Stdout, *zerolog.Ctx(ctx)),
	})
	if err != nil {
		return err
	}
	return rw.Run(ctx)
*/
package operation
