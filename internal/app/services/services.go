package services

// Services defined in this package:
// - AuthService: Checks admin credentials and issues access tokens
// - StudentService: Roster reads and single-record admin mutations
// - ImportService: Validates bulk upload rows and reconciles them
// - RankingService: Computes the filtered, sorted leaderboard
// - MetaService: Developer list and visitor feedback
