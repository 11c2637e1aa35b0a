package metrics

// SQL against the pre-modeled warehouse tables. Filters are appended as
// WHERE clauses with `?` bind placeholders (the postgres driver rebinds to
// $n); filter values are never spliced into the statement text.
const (
	queryRepoVelocity = `
		SELECT REPO, WEEK_START, PRS_OPENED, PRS_MERGED,
		       AVG_CYCLE_TIME_HOURS, AVG_REVIEW_TIME_HOURS,
		       AVG_LINES_ADDED, AVG_LINES_DELETED
		FROM REPO_VELOCITY`

	queryReviewerLoad = `
		SELECT REVIEWER, REPO, WEEK_START, PRS_REVIEWED,
		       AVG_REVIEW_TIME_HOURS, AVG_LINES_ADDED, AVG_LINES_DELETED,
		       REVIEWER_RANK_THIS_WEEK
		FROM REVIEWER_LOAD`

	queryReviewSummary = `
		SELECT REPO, REVIEWER, TOTAL_PRS_REVIEWED,
		       AVG_REVIEW_TIME_HOURS, AVG_PR_CYCLE_TIME_HOURS,
		       AVG_CHANGED_FILES, AVG_FILES_CHANGED,
		       AVG_LINES_ADDED, AVG_LINES_DELETED,
		       FIRST_PR_DATE, LAST_PR_DATE
		FROM PR_REVIEW_SUMMARY`

	queryDORAWeekly = `
		SELECT REPO, WEEK_START, DEPLOYMENTS, AVG_LEAD_TIME_HOURS,
		       CHANGE_FAILURE_RATE, MTTR_HOURS
		FROM DORA_METRICS_WEEKLY`

	queryCycleTimeFacts = `
		SELECT REPO, REVIEWER, PR_AUTHOR, CREATED_AT
		FROM FACT_PR_CYCLE_TIME`

	queryKPISummary = `
		SELECT AVG(DEPLOYMENTS)         AS AVG_DEPLOYMENTS_PER_WEEK,
		       AVG(AVG_LEAD_TIME_HOURS) AS AVG_LEAD_TIME_HOURS,
		       AVG(CHANGE_FAILURE_RATE) AS AVG_CFR,
		       AVG(MTTR_HOURS)          AS AVG_MTTR_HOURS
		FROM DORA_METRICS_WEEKLY`

	queryRepos = `
		SELECT DISTINCT REPO
		FROM DORA_METRICS_WEEKLY
		ORDER BY REPO`

	queryReviewers = `
		SELECT DISTINCT REVIEWER
		FROM REVIEWER_LOAD
		ORDER BY REVIEWER`
)
