/*
Package config loads the job table for docxlate.

	            +-------------+
	            |   Config    |
	            | root, jobs  |
	            +------+------+
	                   |
	      +------------+------------+
	      |            |            |
	+-----+----+  +----+----+  +----+----+
	|   YAML   |  |  JSON   |  |   HCL   |
	|  Parser  |  | Parser  |  | Parser  |
	+----------+  +---------+  +---------+

🎯 Purpose:
- Describes which files are rewritten and the ordered rules for each one
- Picks a parser by file extension
- Validates paths, encodings and rules before anything touches disk
- Ships the ferrite Japanese table as the embedded default

🔄 Flow:
1. Load reads a file, or Default reads the embedded table
2. The parser decodes it into Config, rejecting unknown fields
3. Validate sets defaults (root docs/ja, encoding utf-8), cleans job paths
   and compiles every pattern

📝 Ordering:
Jobs and rules are slices. Execution follows the order in the file, and
every rule sees the output of the rule before it.

🔍 Example:

	cfg, err := config.Load(ctx, "translate.yaml")
	if err != nil {
		return err
	}
	for _, job := range cfg.Jobs {
		fmt.Println(job.Path, len(job.Rules))
	}
*/
package config
