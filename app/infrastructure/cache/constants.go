package cache

// Logical cache keys used by the domain facades. Patterns take the formatting
// arguments shown in their names.
const (
	AssignmentsKeyPrefix         = "assignments"
	AssignmentsKeyPattern        = AssignmentsKeyPrefix + "_%d"
	AssignmentKeyPattern         = AssignmentsKeyPrefix + "_detail_%d"
	AdaptiveAssignmentsKey       = AssignmentsKeyPrefix + "_adaptive"
	LeaderboardKey               = "leaderboard"
	BadgesKey                    = "badges"
	MasteryKey                   = "mastery"
	LearningProfileKey           = "learning_profile"
	ProjectsKey                  = "projects"
	TeacherDashboardKey          = "teacher_dashboard"
	TeacherClassesKey            = "teacher_classes"
	TeacherStudentsKey           = "teacher_students"
	ClassAssignmentsKeyPattern   = "class_assignments_%d"
	ClassAssignmentsKeyPrefix    = "class_assignments"
	InterventionsKey             = "interventions"
	StudentQuizzesKey            = "quizzes_student"
	QuizzesKeyPrefix             = "quizzes"
	QuizStatisticsKeyPattern     = QuizzesKeyPrefix + "_statistics_%d"
	QuizSubmissionsKeyPattern    = QuizzesKeyPrefix + "_submissions_%d"
	SubmissionsKeyPrefix         = "submissions"
	AssignmentSubmissionsPattern = SubmissionsKeyPrefix + "_assignment_%d"
)
