package multiplier

import "strings"

// people lists tasks that need more than one operator working at once.
// Keys are uppercase and trimmed. Anything missing is a one-person task.
// The numbers are a snapshot of the Work2Sheets "Number Of People" column,
// the same column update_number_of_people.py reads. Refresh this table by
// hand when that sheet changes.
var people = map[string]int{
	// DM car
	"DM CAR REMOVE BOGIE A":                   4,
	"DM CAR REMOVE BOGIE B":                   4,
	"DM CAR REFIT BOGIE A":                    4,
	"DM CAR REFIT BOGIE B":                    4,
	"DM CAR LIFT CAR BODY":                    3,
	"DM CAR LOWER CAR BODY":                   3,
	"DM CAR REMOVE COUPLER":                   2,
	"DM CAR REFIT COUPLER":                    2,
	"DM CAR REMOVE TRACTION MOTOR 1":          2,
	"DM CAR REMOVE TRACTION MOTOR 2":          2,
	"DM CAR REFIT TRACTION MOTOR 1":           2,
	"DM CAR REFIT TRACTION MOTOR 2":           2,
	"DM CAR REMOVE GEARBOX":                   2,
	"DM CAR REFIT GEARBOX":                    2,
	"DM CAR REMOVE WHEELSET 1":                2,
	"DM CAR REMOVE WHEELSET 2":                2,
	"DM CAR REFIT WHEELSET 1":                 2,
	"DM CAR REFIT WHEELSET 2":                 2,
	"DM CAR REMOVE SALOON DOOR LEAF":          2,
	"DM CAR REFIT SALOON DOOR LEAF":           2,
	"DM CAR REMOVE SHOEGEAR":                  2,
	"DM CAR REFIT SHOEGEAR":                   2,
	"DM CAR REMOVE CAB DESK":                  2,
	"DM CAR REFIT CAB DESK":                   2,
	"DM CAR REMOVE UNDERFRAME EQUIPMENT CASE": 3,
	"DM CAR REFIT UNDERFRAME EQUIPMENT CASE":  3,
	"DM CAR REMOVE SEATING":                   2,
	"DM CAR REFIT SEATING":                    2,
	"DM CAR REMOVE WINDSCREEN":                3,
	"DM CAR REFIT WINDSCREEN":                 3,
	"DM CAR ROOF INSPECTION":                  2,
	"DM CAR BRAKE TEST":                       2,
	"DM CAR DOOR FUNCTIONAL TEST":             2,
	"DM CAR STATIC TEST":                      2,
	"DM CAR DYNAMIC TEST":                     3,
	"DM CAR WATER TEST":                       2,
	"DM CAR CLEAN UNDERFRAME":                 2,
	"DM CAR PAINT UNDERFRAME":                 2,
	// TRAILER car
	"TRAILER CAR REMOVE BOGIE A":                   4,
	"TRAILER CAR REMOVE BOGIE B":                   4,
	"TRAILER CAR REFIT BOGIE A":                    4,
	"TRAILER CAR REFIT BOGIE B":                    4,
	"TRAILER CAR LIFT CAR BODY":                    3,
	"TRAILER CAR LOWER CAR BODY":                   3,
	"TRAILER CAR REMOVE COUPLER":                   2,
	"TRAILER CAR REFIT COUPLER":                    2,
	"TRAILER CAR REMOVE WHEELSET 1":                2,
	"TRAILER CAR REMOVE WHEELSET 2":                2,
	"TRAILER CAR REFIT WHEELSET 1":                 2,
	"TRAILER CAR REFIT WHEELSET 2":                 2,
	"TRAILER CAR REMOVE SALOON DOOR LEAF":          2,
	"TRAILER CAR REFIT SALOON DOOR LEAF":           2,
	"TRAILER CAR REMOVE BATTERY BOX":               2,
	"TRAILER CAR REFIT BATTERY BOX":                2,
	"TRAILER CAR REMOVE SHOEGEAR":                  2,
	"TRAILER CAR REFIT SHOEGEAR":                   2,
	"TRAILER CAR REMOVE UNDERFRAME EQUIPMENT CASE": 3,
	"TRAILER CAR REFIT UNDERFRAME EQUIPMENT CASE":  3,
	"TRAILER CAR REMOVE SEATING":                   2,
	"TRAILER CAR REFIT SEATING":                    2,
	"TRAILER CAR ROOF INSPECTION":                  2,
	"TRAILER CAR BRAKE TEST":                       2,
	"TRAILER CAR DOOR FUNCTIONAL TEST":             2,
	"TRAILER CAR STATIC TEST":                      2,
	"TRAILER CAR DYNAMIC TEST":                     3,
	"TRAILER CAR WATER TEST":                       2,
	"TRAILER CAR CLEAN UNDERFRAME":                 2,
	"TRAILER CAR PAINT UNDERFRAME":                 2,
	// UNDM car
	"UNDM CAR REMOVE BOGIE A":                   4,
	"UNDM CAR REMOVE BOGIE B":                   4,
	"UNDM CAR REFIT BOGIE A":                    4,
	"UNDM CAR REFIT BOGIE B":                    4,
	"UNDM CAR LIFT CAR BODY":                    3,
	"UNDM CAR LOWER CAR BODY":                   3,
	"UNDM CAR REMOVE COUPLER":                   2,
	"UNDM CAR REFIT COUPLER":                    2,
	"UNDM CAR REMOVE TRACTION MOTOR 1":          2,
	"UNDM CAR REMOVE TRACTION MOTOR 2":          2,
	"UNDM CAR REFIT TRACTION MOTOR 1":           2,
	"UNDM CAR REFIT TRACTION MOTOR 2":           2,
	"UNDM CAR REMOVE GEARBOX":                   2,
	"UNDM CAR REFIT GEARBOX":                    2,
	"UNDM CAR REMOVE WHEELSET 1":                2,
	"UNDM CAR REMOVE WHEELSET 2":                2,
	"UNDM CAR REFIT WHEELSET 1":                 2,
	"UNDM CAR REFIT WHEELSET 2":                 2,
	"UNDM CAR REMOVE SALOON DOOR LEAF":          2,
	"UNDM CAR REFIT SALOON DOOR LEAF":           2,
	"UNDM CAR REMOVE AIR COMPRESSOR":            3,
	"UNDM CAR REFIT AIR COMPRESSOR":             3,
	"UNDM CAR REMOVE SHOEGEAR":                  2,
	"UNDM CAR REFIT SHOEGEAR":                   2,
	"UNDM CAR REMOVE UNDERFRAME EQUIPMENT CASE": 3,
	"UNDM CAR REFIT UNDERFRAME EQUIPMENT CASE":  3,
	"UNDM CAR REMOVE SEATING":                   2,
	"UNDM CAR REFIT SEATING":                    2,
	"UNDM CAR ROOF INSPECTION":                  2,
	"UNDM CAR BRAKE TEST":                       2,
	"UNDM CAR DOOR FUNCTIONAL TEST":             2,
	"UNDM CAR STATIC TEST":                      2,
	"UNDM CAR DYNAMIC TEST":                     3,
	"UNDM CAR WATER TEST":                       2,
	"UNDM CAR CLEAN UNDERFRAME":                 2,
	"UNDM CAR PAINT UNDERFRAME":                 2,
	// SPECIAL TRAILER car
	"SPECIAL TRAILER CAR REMOVE BOGIE A":                   4,
	"SPECIAL TRAILER CAR REMOVE BOGIE B":                   4,
	"SPECIAL TRAILER CAR REFIT BOGIE A":                    4,
	"SPECIAL TRAILER CAR REFIT BOGIE B":                    4,
	"SPECIAL TRAILER CAR LIFT CAR BODY":                    3,
	"SPECIAL TRAILER CAR LOWER CAR BODY":                   3,
	"SPECIAL TRAILER CAR REMOVE COUPLER":                   2,
	"SPECIAL TRAILER CAR REFIT COUPLER":                    2,
	"SPECIAL TRAILER CAR REMOVE WHEELSET 1":                2,
	"SPECIAL TRAILER CAR REMOVE WHEELSET 2":                2,
	"SPECIAL TRAILER CAR REFIT WHEELSET 1":                 2,
	"SPECIAL TRAILER CAR REFIT WHEELSET 2":                 2,
	"SPECIAL TRAILER CAR REMOVE SALOON DOOR LEAF":          2,
	"SPECIAL TRAILER CAR REFIT SALOON DOOR LEAF":           2,
	"SPECIAL TRAILER CAR REMOVE AIR COMPRESSOR":            3,
	"SPECIAL TRAILER CAR REFIT AIR COMPRESSOR":             3,
	"SPECIAL TRAILER CAR REMOVE BATTERY BOX":               2,
	"SPECIAL TRAILER CAR REFIT BATTERY BOX":                2,
	"SPECIAL TRAILER CAR REMOVE SHOEGEAR":                  2,
	"SPECIAL TRAILER CAR REFIT SHOEGEAR":                   2,
	"SPECIAL TRAILER CAR REMOVE UNDERFRAME EQUIPMENT CASE": 3,
	"SPECIAL TRAILER CAR REFIT UNDERFRAME EQUIPMENT CASE":  3,
	"SPECIAL TRAILER CAR REMOVE SEATING":                   2,
	"SPECIAL TRAILER CAR REFIT SEATING":                    2,
	"SPECIAL TRAILER CAR ROOF INSPECTION":                  2,
	"SPECIAL TRAILER CAR BRAKE TEST":                       2,
	"SPECIAL TRAILER CAR DOOR FUNCTIONAL TEST":             2,
	"SPECIAL TRAILER CAR STATIC TEST":                      2,
	"SPECIAL TRAILER CAR DYNAMIC TEST":                     3,
	"SPECIAL TRAILER CAR WATER TEST":                       2,
	"SPECIAL TRAILER CAR CLEAN UNDERFRAME":                 2,
	"SPECIAL TRAILER CAR PAINT UNDERFRAME":                 2,
	// whole unit
	"FIT PROTECTIVE COVERS TO UNIT": 2,
	"SHUNT UNIT INTO ROAD":          3,
	"COUPLE UNITS":                  3,
	"UNCOUPLE UNITS":                3,
	"ISOLATE TRACTION SUPPLY":       2,
	"RESTORE TRACTION SUPPLY":       2,
	"JACK UNIT":                     4,
	"UNJACK UNIT":                   4,
	"WHEEL LATHE TURN":              2,
	"TRAIN WASH":                    2,
	"DE-ICER TANK REMOVAL":          3,
	"DE-ICER TANK REFIT":            3,
	"DE-ICER PUMP CHANGE":           2,
	"FINAL ACCEPTANCE TEST RUN":     3,
}

// PeopleCount returns how many operators a task needs. Lookup ignores case and
// surrounding whitespace, and unknown tasks count as one person.
func PeopleCount(taskName string) int {
	if n, ok := people[Key(taskName)]; ok && n > 0 {
		return n
	}
	return 1
}

// Key normalizes a task name to the table's key form.
func Key(taskName string) string {
	return strings.ToUpper(strings.TrimSpace(taskName))
}

// Len returns the number of tasks in the table.
func Len() int {
	return len(people)
}
