package sections

// Built-in profiles. Aliases are listed most canonical first; the first alias
// is the section's display title.

var standardSections = []Definition{
	{ID: "01-Mission", Short: "Mission Guiding Principles and Purpose", Aliases: []string{"Section 1: Mission, Guiding Principles and Purpose", "1. Mission, Guiding Principles and Purpose"}},
	{ID: "02-Target", Short: "Target Population and Student Body", Aliases: []string{"Section 2: Target Population and Student Body", "2. Target Population and Student Body"}},
	{ID: "03-Ed Design", Short: "Educational Program Design", Aliases: []string{"Section 3: Educational Program Design", "3. Educational Program Design"}},
	{ID: "04-Curriculum", Short: "Curriculum and Instructional Design", Aliases: []string{"Section 4: Curriculum and Instructional Design", "4. Curriculum and Instructional Design"}},
	{ID: "05-Assessment", Short: "Student Performance", Aliases: []string{"Section 5: Student Performance", "5. Student Performance, Assessment and Evaluation", "5. Student Performance"}},
	{ID: "06-ESE", Short: "Exceptional Students", Aliases: []string{"Section 6: Exceptional Students", "6. Exceptional Students"}},
	{ID: "07-ESOL", Short: "English Language Learners", Aliases: []string{"Section 7: English Language Learners", "7. English Language Learners"}},
	{ID: "08-Culture", Short: "School Culture and Discipline", Aliases: []string{"Section 8: School Culture and Discipline", "8. School Culture and Discipline"}},
	{ID: "09-Supplemental", Short: "Supplemental Programming", Aliases: []string{"Section 9: Supplemental Programming", "9. Supplemental Programming"}},
	{ID: "10-Governance", Short: "Governance", Aliases: []string{"Section 10: Governance", "10. Governance"}},
	{ID: "11-Management", Short: "Management and Staffing", Aliases: []string{"Section 11: Management and Staffing", "11. Management and Staffing"}},
	{ID: "12-HR", Short: "Human Resources and Employment", Aliases: []string{"Section 12: Human Resources and Employment", "12. Human Resources and Employment"}},
	{ID: "13-PD", Short: "Professional Development", Aliases: []string{"Section 13: Professional Development", "13. Professional Development"}},
	{ID: "14-Recruitment", Short: "Student Recruitment and Enrollment", Aliases: []string{"Section 14: Student Recruitment and Enrollment", "14. Student Recruitment and Enrollment"}},
	{ID: "15-Parents", Short: "Parent and Community Involvement", Aliases: []string{"Section 15: Parent and Community Involvement", "15. Parent and Community Involvement"}},
	{ID: "16-Facilities", Short: "Facilities", Aliases: []string{"Section 16: Facilities", "16. Facilities"}},
	{ID: "17-Transportation", Short: "Transportation Service", Aliases: []string{"Section 17: Transportation Service", "17. Transportation Service"}},
	{ID: "18-Food Service", Short: "Food Service", Aliases: []string{"Section 18: Food Service", "18. Food Service"}},
	{ID: "19-Safety", Short: "School Safety and Security", Aliases: []string{"Section 19: School Safety and Security", "19. School Safety and Security"}},
	{ID: "20-Budget", Short: "Budget", Aliases: []string{"Section 20: Budget", "20. Budget", "20 (16). Budget"}},
	{ID: "21-Fiscal Management", Short: "Financial Management and Oversight", Aliases: []string{"Section 21: Financial Management and Oversight", "21. Financial Management and Oversight", "21 (17). Financial Management and Oversight"}},
	{ID: "22-Start Up", Short: "Start-Up Plan", Aliases: []string{"Section 22: Start-Up Plan", "22. Start-Up Plan", "22 (18). Start-Up Plan"}},
}

var virtualSections = []Definition{
	{ID: "01-Mission", Short: "Mission, Guiding Principles and Purpose", Aliases: []string{"Section 1: Mission, Guiding Principles and Purpose", "1. Mission, Guiding Principles and Purpose"}},
	{ID: "02-Target", Short: "Target Population and Student Body", Aliases: []string{"Section 2: Target Population and Student Body", "2. Target Population and Student Body"}},
	{ID: "03-Ed Design", Short: "Educational Program Design", Aliases: []string{"Section 3: Educational Program Design", "3. Educational Program Design"}},
	{ID: "04-Curriculum", Short: "Curriculum Plan", Aliases: []string{"Section 4: Curriculum Plan", "4. Curriculum Plan"}},
	{ID: "05-Assessment", Short: "Student Performance, Assessment and Evaluation", Aliases: []string{"Section 5: Student Performance, Assessment And Evaluation", "5. Student Performance, Assessment and Evaluation"}},
	{ID: "06-ESE", Short: "Exceptional Students", Aliases: []string{"Section 6: Exceptional Students", "6. Exceptional Students"}},
	{ID: "07-ESOL", Short: "English Language Learners", Aliases: []string{"Section 7: English Language Learners", "7. English Language Learners"}},
	{ID: "08-Culture", Short: "School Culture and Discipline", Aliases: []string{"Section 8: School Culture and Discipline", "8. School Culture and Discipline"}},
	{ID: "09-Supplemental", Short: "Supplemental Programming", Aliases: []string{"Section 9: Supplemental Programming", "9. Supplemental Programming"}},
	{ID: "10-Governance", Short: "Governance", Aliases: []string{"Section 10: Governance", "10. Governance"}},
	{ID: "11-Management", Short: "Management and Staffing", Aliases: []string{"Section 11: Management and Staffing", "11. Management and Staffing"}},
	{ID: "12-HR", Short: "Human Resources and Employment", Aliases: []string{"Section 12: Human Resources and Employment", "12. Human Resources and Employment"}},
	{ID: "13-PD", Short: "Professional Development", Aliases: []string{"Section 13: Professional Development", "13. Professional Development"}},
	{ID: "14-Recruitment", Short: "Student Recruitment and Enrollment", Aliases: []string{"Section 14: Student Recruitment and Enrollment", "14. Student Recruitment and Enrollment"}},
	{ID: "15-Parents", Short: "Parent and Community Involvement", Aliases: []string{"Section 15: Parent and Community Involvement", "15. Parent and Community Involvement"}},
	{ID: "16-Budget", Short: "Budget", Aliases: []string{"Section 16: Budget", "16. Budget"}},
	{ID: "17-Fiscal Management", Short: "Financial Management and Oversight", Aliases: []string{"Section 17: Financial Management and Oversight", "17. Financial Management and Oversight"}},
	{ID: "18-Start Up", Short: "Start-Up Plan", Aliases: []string{"Section 18: Start-Up Plan", "18. Start-Up Plan"}},
}

var highPerformingSections = []Definition{
	{ID: "25-Replication", Short: "Replication Overview", Aliases: []string{"Section 1: Replication Overview", "1. Replication Overview"}},
	{ID: "01-Mission", Short: "Mission Guiding Principles and Purpose", Aliases: []string{"Section 2: Mission Guiding Principles and Purpose", "2. Mission Guiding Principles and Purpose"}},
	{ID: "03-Ed Design", Short: "Educational Program, Curriculum, and Instructional Design", Aliases: []string{"Section 3: Educational Program, Curriculum, and Instructional Design", "3. Educational Program, Curriculum, and Instructional Design"}},
	{ID: "05-Assessment", Short: "Student Performance", Aliases: []string{"Section 4: Student Performance", "4. Student Performance"}},
	{ID: "14-Recruitment", Short: "Student Recruitment and Enrollment", Aliases: []string{"Section 5: Student Recruitment and Enrollment", "5. Student Recruitment and Enrollment"}},
	{ID: "11-Management", Short: "Management and Staffing", Aliases: []string{"Section 6: Management and Staffing", "6. Management and Staffing"}},
	{ID: "16-Facilities", Short: "Facilities", Aliases: []string{"Section 7: Facilities", "7. Facilities"}},
	{ID: "17-Transportation", Short: "Transportation Service", Aliases: []string{"Section 8: Transportation Service", "8. Transportation Service"}},
	{ID: "18-Food Service", Short: "Food Service", Aliases: []string{"Section 9: Food Service", "9. Food Service"}},
	{ID: "19-Safety", Short: "School Safety and Security", Aliases: []string{"Section 10: School Safety and Security", "10. School Safety and Security"}},
	{ID: "20-Budget", Short: "Budget", Aliases: []string{"Section 11: Budget", "11. Budget"}},
	{ID: "21-Fiscal Management", Short: "Financial Management and Oversight", Aliases: []string{"Section 12: Financial Management and Oversight", "12. Financial Management and Oversight"}},
}
