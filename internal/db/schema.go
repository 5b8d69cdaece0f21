package db

// SchemaSQL contains the database schema initialization SQL.
//
// converted_page.components defaults to [] and is only ever SET by a
// successful save; error saves leave it untouched so a prior good
// conversion survives a failed retry.
const SchemaSQL = `
    -- ==========================================================================
    -- WEEKLY PLAN TABLE
    -- ==========================================================================
    DEFINE TABLE IF NOT EXISTS weekly_plan SCHEMAFULL;
    DEFINE FIELD IF NOT EXISTS week_starting ON weekly_plan TYPE string;
    DEFINE FIELD IF NOT EXISTS title ON weekly_plan TYPE string DEFAULT "";
    DEFINE FIELD IF NOT EXISTS teacher ON weekly_plan FLEXIBLE TYPE object DEFAULT {};
    DEFINE FIELD IF NOT EXISTS classwork ON weekly_plan FLEXIBLE TYPE array DEFAULT [];
    DEFINE FIELD IF NOT EXISTS announcements ON weekly_plan FLEXIBLE TYPE array DEFAULT [];
    DEFINE FIELD IF NOT EXISTS assignments ON weekly_plan FLEXIBLE TYPE array DEFAULT [];
    DEFINE FIELD IF NOT EXISTS assignment_period ON weekly_plan FLEXIBLE TYPE option<object>;
    DEFINE FIELD IF NOT EXISTS created_at ON weekly_plan TYPE datetime DEFAULT time::now();

    DEFINE INDEX IF NOT EXISTS weekly_plan_week ON weekly_plan FIELDS week_starting UNIQUE;

    -- ==========================================================================
    -- CONVERTED PAGE TABLE (transformation cache)
    -- ==========================================================================
    -- Record id is "{course_id}:{page_slug}", one record per page.
    DEFINE TABLE IF NOT EXISTS converted_page SCHEMAFULL;
    DEFINE FIELD IF NOT EXISTS course_id ON converted_page TYPE int;
    DEFINE FIELD IF NOT EXISTS page_slug ON converted_page TYPE string;
    DEFINE FIELD IF NOT EXISTS page_title ON converted_page TYPE string DEFAULT "";
    DEFINE FIELD IF NOT EXISTS page_id ON converted_page TYPE option<int>;
    DEFINE FIELD IF NOT EXISTS canvas_url ON converted_page TYPE option<string>;
    DEFINE FIELD IF NOT EXISTS content_hash ON converted_page TYPE string DEFAULT "";
    DEFINE FIELD IF NOT EXISTS components ON converted_page FLEXIBLE TYPE array DEFAULT [];
    DEFINE FIELD IF NOT EXISTS processing_info ON converted_page FLEXIBLE TYPE option<object>;
    DEFINE FIELD IF NOT EXISTS conversion_success ON converted_page TYPE bool DEFAULT false;
    DEFINE FIELD IF NOT EXISTS conversion_error ON converted_page TYPE option<string>;
    DEFINE FIELD IF NOT EXISTS canvas_updated_at ON converted_page TYPE option<datetime>;
    DEFINE FIELD IF NOT EXISTS first_converted_at ON converted_page TYPE datetime DEFAULT time::now();
    DEFINE FIELD IF NOT EXISTS last_accessed_at ON converted_page TYPE datetime DEFAULT time::now();

    DEFINE INDEX IF NOT EXISTS converted_page_key ON converted_page FIELDS course_id, page_slug UNIQUE;

    -- ==========================================================================
    -- BOARD STATE TABLE (session-keyed kanban layout)
    -- ==========================================================================
    DEFINE TABLE IF NOT EXISTS board_state SCHEMAFULL;
    DEFINE FIELD IF NOT EXISTS session_id ON board_state TYPE string;
    DEFINE FIELD IF NOT EXISTS weekly_plan_id ON board_state TYPE option<string>;
    DEFINE FIELD IF NOT EXISTS columns ON board_state FLEXIBLE TYPE object DEFAULT {};
    DEFINE FIELD IF NOT EXISTS updated_at ON board_state TYPE datetime DEFAULT time::now();
`
