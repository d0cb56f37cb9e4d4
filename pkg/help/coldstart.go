package help

const ColdstartYAML = `# ob-daily-summary Quick Start

commands:
  generate_today: |
    ob-daily-summary generate --vault ~/vault

  previous_day: |
    ob-daily-summary previous --days 1 --vault ~/vault

  preview_prompt: |
    ob-daily-summary generate --vault ~/vault --dry-run

  list_runs: |
    ob-daily-summary history

  run_details: |
    ob-daily-summary history 5

  configure: |
    ob-daily-summary settings set apiKey sk-...
    ob-daily-summary settings set reportLocation ~/vault/reports
    ob-daily-summary settings list

  check_setup: |
    ob-daily-summary doctor --vault ~/vault

selection:
  - "Notes match when created OR modified on the target date"
  - "created comes from the 'created:' frontmatter key, modified from file mtime"
  - "Hidden directories (.obsidian, .trash, .git) are skipped"

report_files:
  - "reports/Daily Report-<YYYY-MM-DD>.md (created, or appended with a timestamped section)"
  - "reports/debug-errors.md (failure diagnostics, secrets redacted)"

settings:
  file: "~/.ob-daily-summary/settings.yaml"
  keys: "apiKey, apiEndpoint, reportLocation"
  env_overrides: "OBDS_API_KEY, OBDS_API_ENDPOINT, OBDS_REPORT_LOCATION, OBDS_VAULT"

history:
  - "Runs tracked in SQLite at ~/.ob-daily-summary/history.db"
  - "Each run records target date, note count, status, and failure kind"
  - "Broken history never blocks report generation"
`
