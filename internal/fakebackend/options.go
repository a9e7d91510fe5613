package fakebackend

import "github.com/abhisek/fitplan/internal/fitness"

// Base option lists served before any tailoring.
var baseGoals = []fitness.Option{
	{ID: "lose_weight", Name: "Lose Weight", Category: fitness.CategoryGoal, Icon: "scale-down",
		Description: "Focus on calorie burning and fat loss through a mix of cardio and strength training."},
	{ID: "build_muscle", Name: "Build Muscle", Category: fitness.CategoryGoal, Icon: "dumbbell",
		Description: "Emphasize resistance training with progressive overload to increase muscle mass."},
	{ID: "improve_endurance", Name: "Improve Endurance", Category: fitness.CategoryGoal, Icon: "heart-pulse",
		Description: "Develop cardiovascular fitness and stamina through sustained activity."},
	{ID: "increase_flexibility", Name: "Increase Flexibility", Category: fitness.CategoryGoal, Icon: "activity",
		Description: "Enhance range of motion and prevent injury through stretching and mobility work."},
	{ID: "general_fitness", Name: "General Fitness", Category: fitness.CategoryGoal, Icon: "zap",
		Description: "Maintain overall health with a balanced approach to exercise."},
	{ID: "tone_body", Name: "Tone Body", Category: fitness.CategoryGoal, Icon: "figure-standing",
		Description: "Define muscles and improve body composition without significant bulk."},
}

var baseEquipment = []fitness.Option{
	{ID: "dumbbells", Name: "Dumbbells", Category: fitness.CategoryEquipment, Icon: "dumbbell",
		Description: "Versatile weights for strength training exercises."},
	{ID: "resistance_bands", Name: "Resistance Bands", Category: fitness.CategoryEquipment, Icon: "circle-dashed",
		Description: "Elastic bands that provide tension for strength training."},
	{ID: "yoga_mat", Name: "Yoga Mat", Category: fitness.CategoryEquipment, Icon: "rectangle-horizontal",
		Description: "Provides cushioning and grip for floor exercises."},
	{ID: "treadmill", Name: "Treadmill", Category: fitness.CategoryEquipment, Icon: "footprints",
		Description: "Machine for walking or running indoors."},
	{ID: "stationary_bike", Name: "Stationary Bike", Category: fitness.CategoryEquipment, Icon: "bike",
		Description: "Indoor cycling equipment for cardio workouts."},
	{ID: "kettlebell", Name: "Kettlebell", Category: fitness.CategoryEquipment, Icon: "dumbbell",
		Description: "Weight with a handle for dynamic strength exercises."},
	{ID: "pull_up_bar", Name: "Pull-up Bar", Category: fitness.CategoryEquipment, Icon: "arrow-up",
		Description: "Bar for upper body strength exercises."},
	{ID: "jump_rope", Name: "Jump Rope", Category: fitness.CategoryEquipment, Icon: "circle-dashed",
		Description: "Simple tool for cardio and coordination."},
	{ID: "bench", Name: "Bench", Category: fitness.CategoryEquipment, Icon: "rectangle-horizontal",
		Description: "Platform for various strength exercises."},
	{ID: "foam_roller", Name: "Foam Roller", Category: fitness.CategoryEquipment, Icon: "cylinder",
		Description: "Cylindrical tool for self-massage and myofascial release."},
}

var baseWorkouts = []fitness.Option{
	{ID: "strength_training", Name: "Strength Training", Category: fitness.CategoryWorkout, Icon: "dumbbell",
		Description: "Exercises that build muscle strength and endurance using resistance."},
	{ID: "hiit", Name: "HIIT", Category: fitness.CategoryWorkout, Icon: "timer",
		Description: "High-Intensity Interval Training alternates between intense bursts and recovery."},
	{ID: "cardio", Name: "Cardio", Category: fitness.CategoryWorkout, Icon: "heart-pulse",
		Description: "Aerobic exercises that elevate heart rate and improve cardiovascular health."},
	{ID: "yoga", Name: "Yoga", Category: fitness.CategoryWorkout, Icon: "lotus",
		Description: "Practice combining physical postures, breathing techniques, and meditation."},
	{ID: "pilates", Name: "Pilates", Category: fitness.CategoryWorkout, Icon: "circle-dot",
		Description: "Low-impact exercises focusing on core strength, posture, and flexibility."},
	{ID: "functional_training", Name: "Functional Training", Category: fitness.CategoryWorkout, Icon: "activity",
		Description: "Exercises that train muscles for daily activities and movements."},
	{ID: "crossfit", Name: "CrossFit", Category: fitness.CategoryWorkout, Icon: "box",
		Description: "High-intensity functional movements combining various exercise styles."},
	{ID: "calisthenics", Name: "Calisthenics", Category: fitness.CategoryWorkout, Icon: "user",
		Description: "Bodyweight exercises to build strength, endurance, and flexibility."},
}

var baseLevels = []fitness.Option{
	{ID: "beginner", Name: "Beginner", Category: fitness.CategoryLevel, Icon: "baby",
		Description: "New to fitness or returning after a long break."},
	{ID: "intermediate", Name: "Intermediate", Category: fitness.CategoryLevel, Icon: "user",
		Description: "Regular exerciser with basic knowledge of proper form."},
	{ID: "advanced", Name: "Advanced", Category: fitness.CategoryLevel, Icon: "trophy",
		Description: "Experienced with consistent training history and good technique."},
}
